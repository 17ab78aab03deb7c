package combat

// HealthFactor rescales a percentage chance by how hard the hit landed
// relative to the target's maximum health. A zero weight or a zero maximum
// health yields the neutral factor 1. Positive weights grow the factor with
// the damage ratio; negative weights invert the curve so odds fall as the
// ratio rises. capTo1 clamps the factor so the base chance is never raised.
func HealthFactor(target Actor, weight, lastDamage float64, capTo1 bool) float64 {
	if target == nil {
		return 1
	}
	maxHealth := target.MaxHealth()
	if maxHealth == 0 {
		return 1
	}

	factor := 1.0
	if weight > 0 {
		factor = lastDamage / maxHealth / weight
	} else if weight < 0 {
		factor = 1 / (lastDamage / maxHealth / -weight)
	}

	if capTo1 && factor > 1 {
		return 1
	}
	return factor
}

// scaledChance applies a health factor to a base percentage and truncates to
// the integer percentage used by the roll.
func scaledChance(base int, factor float64) int {
	return int(float64(base) * factor)
}
