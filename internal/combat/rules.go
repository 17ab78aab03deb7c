package combat

import "regexp"

// NotificationMode selects which text channels a successful rule may use.
type NotificationMode int

const (
	NotifyNone NotificationMode = iota
	NotifyFloating
	NotifyScreen
	NotifyBoth
)

func (m NotificationMode) allowsFloating() bool {
	return m == NotifyFloating || m == NotifyBoth
}

func (m NotificationMode) allowsScreen() bool {
	return m == NotifyScreen || m == NotifyBoth
}

// EffectChance pairs a castable effect identifier with its base percentage
// chance.
type EffectChance struct {
	EffectID string
	Chance   int
}

// LocationRule is one configured body-part rule. Rules are immutable after
// load and evaluated in their configured order.
type LocationRule struct {
	Name    string
	Enabled bool
	// Pattern matches the resolved body-part name.
	Pattern *regexp.Regexp
	// Continue lets evaluation proceed past a successful match instead of
	// stopping.
	Continue bool

	DamageMult float64
	// Difficulty weights the experience reward for hits on this location.
	Difficulty float64
	// Deflect flips a sticking projectile's outcome to a bounce.
	Deflect bool

	// SuccessChance is the base percentage gate, rescaled by SuccessHPFactor
	// when the factor is non-zero.
	SuccessChance      int
	SuccessHPFactor    float64
	SuccessHPFactorCap bool

	Effects []EffectChance

	ImpactOverrideID string
	HitSound         string
	Message          string
	MessageFloating  string

	FloatingColorSelf  uint32
	FloatingColorEnemy uint32
	FloatingSize       int

	Filter TargetFilter
}

// MatchesPart reports whether the rule applies to the resolved part name.
func (r *LocationRule) MatchesPart(name string) bool {
	return r.Enabled && r.Pattern != nil && r.Pattern.MatchString(name)
}

// GlobalSettings carries the process-wide toggles loaded alongside the rule
// list.
type GlobalSettings struct {
	DebugNotification       bool
	PlayerHitNotification   bool
	PlayerHitSound          bool
	HitEffectNotification   bool
	NPCFloatingNotification bool
	NotificationMode        NotificationMode
	IgnoreHitboxCheck       bool

	// EffectHPFactor rescales per-effect cast chances by damage dealt over
	// max health; EffectChanceCap clamps the factor at 1.
	EffectHPFactor  float64
	EffectChanceCap bool

	AmplifyEffects bool

	FloatingOffsetX float64
	FloatingOffsetY float64

	// Reward scaling knobs for the experience step.
	LocationRewardScaling   bool
	DifficultyRewardScaling bool
	RewardCap               float64
	RewardNotification      bool
	FlightTimeFactor        float64
	DistanceFactor          float64
	MovementFactor          float64
}

// RuleSet is one immutable generation of configuration: the ordered rules,
// the global toggles, and the compiled node patterns. Reload installs a new
// RuleSet wholesale; in-flight hits keep the generation they started with.
type RuleSet struct {
	Rules    []LocationRule
	Settings GlobalSettings

	// ExcludeNodes rejects skeleton nodes from resolution entirely.
	ExcludeNodes *regexp.Regexp
	// FirstPersonNodes restricts first-person resolution, typically to hand
	// and weapon nodes.
	FirstPersonNodes *regexp.Regexp
}

// ResolveOptions derives the resolver policies for a hit on the given target.
func (rs *RuleSet) ResolveOptions(firstPerson bool) ResolveOptions {
	if rs == nil {
		return ResolveOptions{}
	}
	return ResolveOptions{
		FirstPerson:       firstPerson,
		IgnoreHitboxCheck: rs.Settings.IgnoreHitboxCheck,
		ExcludeNodes:      rs.ExcludeNodes,
		FirstPersonNodes:  rs.FirstPersonNodes,
	}
}
