package combat

// TraitSource answers keyword capability queries for a single subject: an
// actor, a worn item, an effect definition, or a weapon/ammo form. Hosts
// provide one adapter per subject kind.
type TraitSource interface {
	HasTrait(keyword string) bool
}

// Sex constrains a rule to one target sex. SexAny disables the check, and a
// target whose sex is indeterminate passes it.
type Sex int

const (
	SexAny Sex = iota
	SexMale
	SexFemale
)

// AmmoCategory classifies the ammunition that fired a projectile.
type AmmoCategory int

const (
	AmmoAny AmmoCategory = iota
	AmmoArrow
	AmmoBolt
)

// AmmoSource is the ammunition view of a projectile: its keyword traits plus
// the arrow/bolt classification.
type AmmoSource interface {
	TraitSource
	Category() AmmoCategory
}

// ActiveEffect is one status effect currently attached to an actor. The
// setter methods back the post-hit amplification step.
type ActiveEffect interface {
	// Active reports whether the effect currently applies; inactive effects
	// never satisfy effect-domain filters.
	Active() bool
	// Definition exposes the underlying effect definition's traits.
	Definition() EffectDefinition
	// CasterID identifies the actor that applied the effect, empty when
	// unknown.
	CasterID() string
	// ElapsedSeconds is the time the effect has been running. Amplification
	// only touches effects created during the current hit (elapsed zero).
	ElapsedSeconds() float64
	// PowerAffectsMagnitude selects whether amplification scales magnitude
	// or duration.
	PowerAffectsMagnitude() bool

	Magnitude() float64
	SetMagnitude(float64)
	Duration() float64
	SetDuration(float64)
}

// EffectDefinition describes a castable effect bundle resolved by identifier.
type EffectDefinition interface {
	TraitSource
	// Name is the display name staged as floating text when hit-effect
	// notification is enabled.
	Name() string
	// PeakValueOnly reports whether every constituent magic effect is a
	// peak-value-modifier. Such bundles are cast from the target to avoid
	// stacking defects when the same source casts repeatedly.
	PeakValueOnly() bool
}

// ImpactOverride is an opaque handle for a host impact-material record staged
// between the decide and apply callbacks.
type ImpactOverride interface {
	ID() string
}

// Actor is the read-only view of a combatant the engine evaluates rules
// against.
type Actor interface {
	TraitSource
	ID() string
	// Name is the display name used in screen notifications.
	Name() string
	IsAlive() bool
	IsPlayer() bool
	MaxHealth() float64
	RaceName() string
	Sex() Sex
	WornEquipment() []TraitSource
	ActiveEffects() []ActiveEffect
	Skeleton() *SkeletonNode
	Velocity() Vec3
	// BodyExtents returns the collision-bound half-extents. Z is the half
	// height used for shot-size scaling, Y the side profile width.
	BodyExtents() Vec3
	IsFlying() bool
}

// Projectile is the read-only view of the missile that produced a hit.
type Projectile interface {
	// Weapon and Ammo may be nil for environmental sources such as traps.
	Weapon() TraitSource
	Ammo() AmmoSource
	// FlightTime is the elapsed flight in seconds.
	FlightTime() float64
	// DistanceTravelled is the total distance covered, in world units.
	DistanceTravelled() float64
	Velocity() Vec3
	// Hitscan marks instantaneous projectiles used by non-physical targeting
	// systems; the engine rejects them outright.
	Hitscan() bool
	// ArrowClass reports whether the projectile belongs to the recognized
	// arrow category the engine handles.
	ArrowClass() bool
	// SticksOnImpact reports whether the projectile is currently configured
	// to stick into its target rather than bounce off.
	SticksOnImpact() bool
}

// IdentityResolver maps a target to the stable identifier matched by
// identity-regex filters. It is populated out of band; rules that require it
// are inert (fail closed) while it is absent.
type IdentityResolver interface {
	StableID(target Actor) (string, bool)
}

// Commands is the host surface the engine drives when a rule fires. All
// methods are synchronous and must not block.
type Commands interface {
	// CheckValidTarget applies the host's hostility rules; a rejected pair
	// aborts hit processing with no effect.
	CheckValidTarget(shooter, target Actor) bool
	// LookupEffect resolves a configured effect identifier. Missing entries
	// silently skip the cast.
	LookupEffect(id string) (EffectDefinition, bool)
	// CastEffect casts the definition from source onto target.
	CastEffect(def EffectDefinition, source, target Actor)
	// LookupImpact resolves a configured impact-material identifier.
	LookupImpact(id string) (ImpactOverride, bool)
	// DeflectProjectile flips a stuck projectile's outcome to a bounce.
	DeflectProjectile(p Projectile)
	PlaySound(name string)
	ShowScreenText(text string)
	// WeaponBaseDamage returns the shooter's drawn weapon base attack
	// damage, the scale basis for experience rewards.
	WeaponBaseDamage(shooter Actor) float64
	GrantExperience(shooter Actor, amount float64)
	// FirstPersonView reports whether the given actor is viewing the world
	// in first person.
	FirstPersonView(actor Actor) bool
}
