package combat

import "sync"

// FloatingText is one staged floating-combat-text entry.
type FloatingText struct {
	Text  string
	Color uint32
	Size  int
}

// FloatingBatch is the flushed presentation unit: the staged entries plus
// their screen-space anchoring.
type FloatingBatch struct {
	Entries  []FloatingText
	TargetID string
	// Anchor is the world-space point to project toward; nil keeps the text
	// at the viewer's default position (first-person hits on oneself).
	Anchor  *Vec3
	OffsetX float64
	OffsetY float64
	// Opacity is reduced for hits that involve no player.
	Opacity float64
}

// FloatingPresenter is the host's floating-text surface.
type FloatingPresenter interface {
	// Ready reports whether floating text can currently be delivered; when
	// false, staging fails and callers fall back to screen text.
	Ready() bool
	Present(batch FloatingBatch)
}

// floatingBuffer stages floating text between rule execution and the
// per-hit flush. The buffer is shared across callback re-entries, so stage
// and drain each take the lock for the shortest possible section.
type floatingBuffer struct {
	mu        sync.Mutex
	presenter FloatingPresenter
	staged    []FloatingText
}

func newFloatingBuffer(presenter FloatingPresenter) *floatingBuffer {
	return &floatingBuffer{presenter: presenter}
}

// Stage appends one entry, reporting false when the presenter cannot deliver.
func (b *floatingBuffer) Stage(text string, color uint32, size int) bool {
	if b == nil || b.presenter == nil || !b.presenter.Ready() {
		return false
	}
	b.mu.Lock()
	b.staged = append(b.staged, FloatingText{Text: text, Color: color, Size: size})
	b.mu.Unlock()
	return true
}

// Flush drains the staged entries into one presented batch.
func (b *floatingBuffer) Flush(targetID string, anchor *Vec3, offsetX, offsetY, opacity float64) {
	if b == nil || b.presenter == nil {
		return
	}
	b.mu.Lock()
	staged := b.staged
	b.staged = nil
	b.mu.Unlock()

	if len(staged) == 0 {
		return
	}
	b.presenter.Present(FloatingBatch{
		Entries:  staged,
		TargetID: targetID,
		Anchor:   anchor,
		OffsetX:  offsetX,
		OffsetY:  offsetY,
		Opacity:  opacity,
	})
}
