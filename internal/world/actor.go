package world

import "nock-and-loose/server/internal/combat"

// TraitSet is the keyword capability set shared by actors, items, and effect
// definitions.
type TraitSet map[string]struct{}

func NewTraitSet(keywords ...string) TraitSet {
	set := make(TraitSet, len(keywords))
	for _, keyword := range keywords {
		set[keyword] = struct{}{}
	}
	return set
}

func (s TraitSet) HasTrait(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

// Item is a wearable or wieldable form: a name for reporting plus its trait
// keywords.
type Item struct {
	Name   string
	Traits TraitSet
}

func (i *Item) HasTrait(keyword string) bool {
	return i.Traits.HasTrait(keyword)
}

// ActorState is the demo world's combatant record.
type ActorState struct {
	id     string
	name   string
	player bool

	health    float64
	maxHealth float64

	race   string
	sex    combat.Sex
	flying bool

	traits  TraitSet
	worn    []*Item
	effects []*EffectInstance

	skeleton *combat.SkeletonNode
	position combat.Vec3
	velocity combat.Vec3
	extents  combat.Vec3

	experience float64
}

func (a *ActorState) HasTrait(keyword string) bool { return a.traits.HasTrait(keyword) }
func (a *ActorState) ID() string                   { return a.id }
func (a *ActorState) Name() string                 { return a.name }
func (a *ActorState) IsAlive() bool                { return a.health > 0 }
func (a *ActorState) IsPlayer() bool               { return a.player }
func (a *ActorState) MaxHealth() float64           { return a.maxHealth }
func (a *ActorState) RaceName() string             { return a.race }
func (a *ActorState) Sex() combat.Sex              { return a.sex }
func (a *ActorState) IsFlying() bool               { return a.flying }

func (a *ActorState) WornEquipment() []combat.TraitSource {
	worn := make([]combat.TraitSource, 0, len(a.worn))
	for _, item := range a.worn {
		worn = append(worn, item)
	}
	return worn
}

func (a *ActorState) ActiveEffects() []combat.ActiveEffect {
	effects := make([]combat.ActiveEffect, 0, len(a.effects))
	for _, effect := range a.effects {
		effects = append(effects, effect)
	}
	return effects
}

func (a *ActorState) Skeleton() *combat.SkeletonNode { return a.skeleton }
func (a *ActorState) Velocity() combat.Vec3          { return a.velocity }
func (a *ActorState) BodyExtents() combat.Vec3       { return a.extents }

// Position is the actor's chest-height reference point; the skeleton hangs
// off it.
func (a *ActorState) Position() combat.Vec3 { return a.position }

func (a *ActorState) Health() float64     { return a.health }
func (a *ActorState) Experience() float64 { return a.experience }

// ApplyDamage subtracts raw health. Location multipliers are applied by the
// caller before this point.
func (a *ActorState) ApplyDamage(amount float64) {
	a.health -= amount
	if a.health < 0 {
		a.health = 0
	}
}
