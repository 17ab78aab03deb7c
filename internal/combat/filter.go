package combat

// FilterDomain tags which subject a keyword filter inspects.
type FilterDomain int

const (
	// DomainActor matches keywords carried by the target actor itself.
	DomainActor FilterDomain = iota
	// DomainEquipment matches keywords on the target's worn equipment.
	DomainEquipment
	// DomainEffect matches keywords on the target's active status effect
	// definitions.
	DomainEffect
	// DomainSource matches keywords on the weapon or ammunition that fired
	// the projectile.
	DomainSource
)

// KeywordPredicate is one (keyword, negate) pair. A negated predicate holds
// when the subject lacks the keyword.
type KeywordPredicate struct {
	Keyword string
	Negate  bool
}

// KeywordFilter is a conjunction of predicates evaluated against a single
// subject from one domain.
type KeywordFilter struct {
	Domain     FilterDomain
	Predicates []KeywordPredicate
}

// Matches reports whether the subject satisfies every predicate.
func (f KeywordFilter) Matches(subject TraitSource) bool {
	if subject == nil {
		return false
	}
	for _, pred := range f.Predicates {
		has := subject.HasTrait(pred.Keyword)
		if pred.Negate {
			has = !has
		}
		if !has {
			return false
		}
	}
	return true
}

// FilterGroup bundles keyword filters across domains. The group evaluates
// true only when every domain it declares is satisfied; domains it does not
// reference are vacuously true.
type FilterGroup struct {
	Filters []KeywordFilter
}

func (g FilterGroup) hasDomain(domain FilterDomain) bool {
	for _, f := range g.Filters {
		if f.Domain == domain {
			return true
		}
	}
	return false
}

func (g FilterGroup) domainFilters(domain FilterDomain) []KeywordFilter {
	var filters []KeywordFilter
	for _, f := range g.Filters {
		if f.Domain == domain {
			filters = append(filters, f)
		}
	}
	return filters
}

// Evaluate classifies the target and projectile source against every domain
// the group declares. The classification reads currently-observed host state
// and holds no state of its own, so repeated calls may disagree when the host
// state changes between them.
func (g FilterGroup) Evaluate(target Actor, source Projectile) bool {
	if target == nil {
		return false
	}
	return g.actorSatisfied(target) &&
		g.equipmentSatisfied(target) &&
		g.effectsSatisfied(target) &&
		g.sourceSatisfied(source)
}

// actorSatisfied requires the actor to satisfy every actor-domain filter.
func (g FilterGroup) actorSatisfied(target Actor) bool {
	for _, f := range g.domainFilters(DomainActor) {
		if !f.Matches(target) {
			return false
		}
	}
	return true
}

// equipmentSatisfied requires each equipment-domain filter to be satisfied by
// at least one worn item. Distinct filters may be satisfied by distinct items.
func (g FilterGroup) equipmentSatisfied(target Actor) bool {
	outstanding := g.domainFilters(DomainEquipment)
	if len(outstanding) == 0 {
		return true
	}
	for _, item := range target.WornEquipment() {
		outstanding = removeSatisfied(outstanding, item)
		if len(outstanding) == 0 {
			return true
		}
	}
	return false
}

// effectsSatisfied mirrors equipmentSatisfied over active, non-inactive
// status effect definitions.
func (g FilterGroup) effectsSatisfied(target Actor) bool {
	outstanding := g.domainFilters(DomainEffect)
	if len(outstanding) == 0 {
		return true
	}
	for _, effect := range target.ActiveEffects() {
		if effect == nil || !effect.Active() {
			continue
		}
		outstanding = removeSatisfied(outstanding, effect.Definition())
		if len(outstanding) == 0 {
			return true
		}
	}
	return false
}

// sourceSatisfied requires each source-domain filter to match the firing
// weapon or the firing ammunition. A projectile with no recorded weapon and
// ammo cannot satisfy source filters.
func (g FilterGroup) sourceSatisfied(source Projectile) bool {
	if !g.hasDomain(DomainSource) {
		return true
	}
	if source == nil {
		return false
	}
	weapon := source.Weapon()
	var ammo TraitSource
	if a := source.Ammo(); a != nil {
		ammo = a
	}
	if weapon == nil || ammo == nil {
		return false
	}
	for _, f := range g.domainFilters(DomainSource) {
		if !f.Matches(weapon) && !f.Matches(ammo) {
			return false
		}
	}
	return true
}

func removeSatisfied(filters []KeywordFilter, subject TraitSource) []KeywordFilter {
	remaining := filters[:0]
	for _, f := range filters {
		if !f.Matches(subject) {
			remaining = append(remaining, f)
		}
	}
	return remaining
}
