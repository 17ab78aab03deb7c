package combat

import "regexp"

// TargetFilter is the composite per-rule predicate deciding whether a rule
// applies to a target/source pair. All patterns are compiled at configuration
// load; a nil pattern slice or pointer disables its check.
type TargetFilter struct {
	Include []FilterGroup
	Exclude []FilterGroup

	RaceInclude []*regexp.Regexp
	RaceExclude []*regexp.Regexp

	Sex Sex

	// Identity matches the target's resolved stable identifier. Rules
	// carrying an identity pattern fail closed while no resolver is
	// available.
	Identity *regexp.Regexp

	Ammo AmmoCategory
}

// IsEligible computes the include/exclude verdict for one hit. Checks run in
// a fixed order and short-circuit on the first failure.
func (tf *TargetFilter) IsEligible(target Actor, source Projectile, identity IdentityResolver) bool {
	if tf == nil {
		return true
	}
	if target == nil {
		return false
	}

	eligible := len(tf.Include) == 0
	for _, group := range tf.Include {
		if group.Evaluate(target, source) {
			eligible = true
			break
		}
	}
	if !eligible {
		return false
	}

	for _, group := range tf.Exclude {
		if group.Evaluate(target, source) {
			return false
		}
	}

	if len(tf.RaceInclude) > 0 {
		race := target.RaceName()
		matched := false
		for _, pattern := range tf.RaceInclude {
			if pattern.MatchString(race) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Race exclusion intentionally keeps the target only when every exclude
	// pattern matches, asymmetric with the any-match include policy above.
	if len(tf.RaceExclude) > 0 {
		race := target.RaceName()
		for _, pattern := range tf.RaceExclude {
			if !pattern.MatchString(race) {
				return false
			}
		}
	}

	if tf.Sex != SexAny {
		if targetSex := target.Sex(); targetSex != SexAny && targetSex != tf.Sex {
			return false
		}
	}

	if tf.Identity != nil {
		if identity == nil {
			return false
		}
		id, ok := identity.StableID(target)
		if !ok || !tf.Identity.MatchString(id) {
			return false
		}
	}

	if tf.Ammo != AmmoAny && source != nil {
		if ammo := source.Ammo(); ammo != nil && ammo.Category() != tf.Ammo {
			return false
		}
	}

	return true
}
