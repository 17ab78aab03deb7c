package combat

import (
	"sync"
	"time"
)

// DefaultOverrideTTL bounds how long a pending override stays consumable when
// the matching apply callback never arrives.
const DefaultOverrideTTL = 100 * time.Millisecond

// PendingOverride correlates the decide and apply callbacks for one hit: the
// damage multiplier and optional impact override computed while deciding the
// outcome, keyed by the participants and impact location.
type PendingOverride struct {
	AggressorID string
	TargetID    string
	Location    Vec3

	DamageMult float64
	Impact     ImpactOverride

	ExpiresAt time.Time
}

// OverrideQueue is the short-lived correlation buffer between the two hit
// callbacks. All operations share one critical section so a sweep can never
// race a push/consume pair.
type OverrideQueue struct {
	mu      sync.Mutex
	entries []PendingOverride
}

// NewOverrideQueue returns an empty queue.
func NewOverrideQueue() *OverrideQueue {
	return &OverrideQueue{}
}

// Push appends an entry.
func (q *OverrideQueue) Push(entry PendingOverride) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entry)
}

// TryConsume removes and returns the first entry matching the triple exactly.
// At most one entry matches a given hit: pushes happen synchronously inside
// the hit evaluation that later triggers the matching consume.
func (q *OverrideQueue) TryConsume(aggressorID, targetID string, location Vec3) (PendingOverride, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, entry := range q.entries {
		if entry.AggressorID == aggressorID && entry.TargetID == targetID && entry.Location == location {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return entry, true
		}
	}
	return PendingOverride{}, false
}

// Sweep drops every entry whose TTL has elapsed. Callers run it before
// matching so an expired entry can never be consumed.
func (q *OverrideQueue) Sweep(now time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.entries[:0]
	for _, entry := range q.entries {
		if entry.ExpiresAt.After(now) {
			kept = append(kept, entry)
		}
	}
	q.entries = kept
}

// Len reports the current entry count.
func (q *OverrideQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
