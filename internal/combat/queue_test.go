package combat

import (
	"testing"
	"time"
)

func TestOverrideQueueConsumeOnce(t *testing.T) {
	queue := NewOverrideQueue()
	location := Vec3{X: 1, Y: 2, Z: 3}
	queue.Push(PendingOverride{
		AggressorID: "archer",
		TargetID:    "bandit",
		Location:    location,
		DamageMult:  3,
		ExpiresAt:   time.Now().Add(time.Second),
	})

	entry, ok := queue.TryConsume("archer", "bandit", location)
	if !ok {
		t.Fatalf("expected to consume the pending override")
	}
	if entry.DamageMult != 3 {
		t.Fatalf("expected multiplier 3, got %v", entry.DamageMult)
	}

	if _, ok := queue.TryConsume("archer", "bandit", location); ok {
		t.Fatalf("an override must be consumed at most once")
	}
}

func TestOverrideQueueExactKey(t *testing.T) {
	queue := NewOverrideQueue()
	location := Vec3{X: 1}
	queue.Push(PendingOverride{
		AggressorID: "archer",
		TargetID:    "bandit",
		Location:    location,
		ExpiresAt:   time.Now().Add(time.Second),
	})

	if _, ok := queue.TryConsume("other", "bandit", location); ok {
		t.Fatalf("wrong aggressor must not consume")
	}
	if _, ok := queue.TryConsume("archer", "other", location); ok {
		t.Fatalf("wrong target must not consume")
	}
	if _, ok := queue.TryConsume("archer", "bandit", Vec3{X: 2}); ok {
		t.Fatalf("wrong location must not consume")
	}
	if _, ok := queue.TryConsume("archer", "bandit", location); !ok {
		t.Fatalf("exact triple must consume")
	}
}

func TestOverrideQueueSweepExpires(t *testing.T) {
	queue := NewOverrideQueue()
	now := time.Now()
	queue.Push(PendingOverride{AggressorID: "a", TargetID: "b", ExpiresAt: now.Add(50 * time.Millisecond)})
	queue.Push(PendingOverride{AggressorID: "c", TargetID: "d", ExpiresAt: now.Add(time.Second)})

	queue.Sweep(now)
	if got := queue.Len(); got != 2 {
		t.Fatalf("nothing expired yet, got %d entries", got)
	}

	queue.Sweep(now.Add(100 * time.Millisecond))
	if got := queue.Len(); got != 1 {
		t.Fatalf("expected one surviving entry, got %d", got)
	}
	if _, ok := queue.TryConsume("a", "b", Vec3{}); ok {
		t.Fatalf("expired entry must be gone")
	}
	if _, ok := queue.TryConsume("c", "d", Vec3{}); !ok {
		t.Fatalf("unexpired entry must remain consumable")
	}
}
