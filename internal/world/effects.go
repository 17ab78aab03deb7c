package world

import "nock-and-loose/server/internal/combat"

// EffectDefinitionState is a castable effect bundle registered with the
// world's catalog.
type EffectDefinitionState struct {
	ID            string
	DisplayName   string
	Traits        TraitSet
	Peak          bool
	BaseMagnitude float64
	BaseDuration  float64
	// Magnitude selects what amplification scales; false scales duration.
	MagnitudeScaling bool
}

func (d *EffectDefinitionState) HasTrait(keyword string) bool { return d.Traits.HasTrait(keyword) }
func (d *EffectDefinitionState) Name() string                 { return d.DisplayName }
func (d *EffectDefinitionState) PeakValueOnly() bool          { return d.Peak }

// EffectInstance is one effect attached to an actor.
type EffectInstance struct {
	def     *EffectDefinitionState
	caster  string
	elapsed float64

	active    bool
	magnitude float64
	duration  float64
}

func newEffectInstance(def *EffectDefinitionState, casterID string) *EffectInstance {
	return &EffectInstance{
		def:       def,
		caster:    casterID,
		active:    true,
		magnitude: def.BaseMagnitude,
		duration:  def.BaseDuration,
	}
}

func (e *EffectInstance) Active() bool                      { return e.active }
func (e *EffectInstance) Definition() combat.EffectDefinition { return e.def }
func (e *EffectInstance) CasterID() string                  { return e.caster }
func (e *EffectInstance) ElapsedSeconds() float64           { return e.elapsed }
func (e *EffectInstance) PowerAffectsMagnitude() bool       { return e.def.MagnitudeScaling }
func (e *EffectInstance) Magnitude() float64                { return e.magnitude }
func (e *EffectInstance) SetMagnitude(value float64)        { e.magnitude = value }
func (e *EffectInstance) Duration() float64                 { return e.duration }
func (e *EffectInstance) SetDuration(value float64)         { e.duration = value }

// advance ages the instance by dt seconds and retires it once its duration
// runs out.
func (e *EffectInstance) advance(dt float64) {
	e.elapsed += dt
	if e.duration > 0 && e.elapsed >= e.duration {
		e.active = false
	}
}

func defaultEffectDefinitions() map[string]*EffectDefinitionState {
	return map[string]*EffectDefinitionState{
		"crippling_wound": {
			ID:               "crippling_wound",
			DisplayName:      "Crippling Wound",
			Traits:           NewTraitSet("MagicInfluenceSpeed"),
			BaseMagnitude:    30,
			BaseDuration:     8,
			MagnitudeScaling: true,
		},
		"disarm_fumble": {
			ID:            "disarm_fumble",
			DisplayName:   "Fumble",
			Traits:        NewTraitSet("MagicInfluenceGrip"),
			BaseMagnitude: 1,
			BaseDuration:  3,
		},
		"winded": {
			ID:               "winded",
			DisplayName:      "Winded",
			Traits:           NewTraitSet("MagicInfluenceStamina"),
			Peak:             true,
			BaseMagnitude:    20,
			BaseDuration:     5,
			MagnitudeScaling: true,
		},
	}
}
