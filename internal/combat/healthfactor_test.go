package combat

import (
	"math"
	"testing"
)

func TestHealthFactorPositiveWeight(t *testing.T) {
	target := newFakeActor("bandit")
	target.maxHealth = 100

	// 25 damage on 100 health with weight 0.5 halves the chance basis.
	got := HealthFactor(target, 0.5, 25, false)
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected factor 0.5, got %v", got)
	}

	got = HealthFactor(target, 0.25, 50, false)
	if math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("expected factor 2.0, got %v", got)
	}
}

func TestHealthFactorNegativeWeightInverts(t *testing.T) {
	target := newFakeActor("bandit")
	target.maxHealth = 100

	heavy := HealthFactor(target, -0.5, 80, false)
	light := HealthFactor(target, -0.5, 10, false)
	if heavy >= light {
		t.Fatalf("negative weight must shrink the factor as damage grows: %v vs %v", heavy, light)
	}
}

func TestHealthFactorNeutralCases(t *testing.T) {
	target := newFakeActor("bandit")
	target.maxHealth = 0
	if got := HealthFactor(target, 0.5, 50, false); got != 1 {
		t.Fatalf("zero max health must be neutral, got %v", got)
	}

	target.maxHealth = 100
	if got := HealthFactor(target, 0, 50, false); got != 1 {
		t.Fatalf("zero weight must be neutral, got %v", got)
	}

	if got := HealthFactor(nil, 0.5, 50, false); got != 1 {
		t.Fatalf("nil target must be neutral, got %v", got)
	}
}

func TestHealthFactorCap(t *testing.T) {
	target := newFakeActor("bandit")
	target.maxHealth = 100

	uncapped := HealthFactor(target, 0.1, 50, false)
	if uncapped <= 1 {
		t.Fatalf("expected a boosting factor, got %v", uncapped)
	}
	if got := HealthFactor(target, 0.1, 50, true); got != 1 {
		t.Fatalf("cap must clamp the factor to 1, got %v", got)
	}
}

func TestScaledChanceTruncates(t *testing.T) {
	if got := scaledChance(75, 0.5); got != 37 {
		t.Fatalf("expected 37, got %d", got)
	}
	if got := scaledChance(100, 1); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}
