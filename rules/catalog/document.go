package catalog

import "encoding/json"

// Document models the JSON contract for the designer-authored rules file. It
// is shared with the schema generator so tooling can validate and autocomplete
// the configuration.
type Document struct {
	Settings SettingsDocument `json:"settings" jsonschema:"title=Global settings,description=Process-wide toggles applied to every hit"`
	// LocationExclude rejects skeleton node names from hit resolution.
	LocationExclude string `json:"locationExclude,omitempty" jsonschema:"title=Excluded node pattern,description=Regular expression matching node names that never resolve as hit parts"`
	// FirstPersonNodes restricts first-person resolution to matching nodes.
	FirstPersonNodes string `json:"firstPersonNodes,omitempty" jsonschema:"title=First person node pattern,description=Regular expression matching the node names visible in first person"`
	// Locations holds the ordered rules, either as an array or as an object
	// keyed by LocationN section names ordered by their numeric suffix.
	Locations json.RawMessage `json:"locations" jsonschema:"title=Location rules,description=Ordered location rule sections"`
}

// SettingsDocument mirrors combat.GlobalSettings on disk. Pointer fields keep
// their documented defaults when omitted.
type SettingsDocument struct {
	DebugNotification     bool    `json:"debugNotification,omitempty"`
	PlayerHitNotification bool    `json:"playerHitNotification,omitempty"`
	PlayerHitSound        *bool   `json:"playerHitSound,omitempty" jsonschema:"description=Play rule hit sounds when the player is the target,default=true"`
	HitNotificationMode   string  `json:"hitNotificationMode,omitempty" jsonschema:"enum=none,enum=floating,enum=screen,enum=both,default=floating"`
	HitEffectNotification *bool   `json:"hitEffectNotification,omitempty" jsonschema:"default=true"`
	NPCHitNotification    bool    `json:"npcHitNotification,omitempty"`
	IgnoreHitboxCheck     bool    `json:"ignoreHitboxCheck,omitempty"`
	HPFactor              *float64 `json:"hpFactor,omitempty" jsonschema:"description=Percent weight applied to effect cast chances,default=50"`
	HPFactorCap           *bool    `json:"hpFactorCap,omitempty" jsonschema:"default=true"`
	AmplifyEffects        *bool    `json:"amplifyEffects,omitempty" jsonschema:"description=Scale fresh aggressor-cast effects by the rule multiplier,default=true"`
	FloatingTextOffsetX   float64  `json:"floatingTextOffsetX,omitempty"`
	FloatingTextOffsetY   *float64 `json:"floatingTextOffsetY,omitempty" jsonschema:"default=0.04"`

	Reward RewardDocument `json:"reward,omitempty" jsonschema:"title=Experience reward,description=Shot reward scaling for the player"`
}

// RewardDocument tunes the experience reward step.
type RewardDocument struct {
	LocationScaling   bool     `json:"locationScaling,omitempty"`
	DifficultyScaling bool     `json:"difficultyScaling,omitempty"`
	Cap               float64  `json:"cap,omitempty" jsonschema:"description=Upper bound for the reward multiplier; zero disables the cap"`
	Notification      bool     `json:"notification,omitempty"`
	FlightTimeFactor  *float64 `json:"flightTimeFactor,omitempty" jsonschema:"default=1"`
	DistanceFactor    *float64 `json:"distanceFactor,omitempty" jsonschema:"default=1"`
	MovementFactor    *float64 `json:"movementFactor,omitempty" jsonschema:"default=1"`
}

// LocationDocument is one rule section. A section without a regexp is loaded
// disabled, matching the original configuration convention.
type LocationDocument struct {
	Regexp   string `json:"regexp,omitempty" jsonschema:"title=Part pattern,description=Regular expression matched against the resolved body part name"`
	Continue bool   `json:"continue,omitempty" jsonschema:"description=Keep evaluating further rules after this one succeeds"`

	Multiplier *float64 `json:"multiplier,omitempty" jsonschema:"default=1"`
	Difficulty *float64 `json:"difficulty,omitempty" jsonschema:"description=Reward weight for hits on this location,default=1"`
	Deflect    bool     `json:"deflect,omitempty"`

	SuccessChance      *int     `json:"successChance,omitempty" jsonschema:"minimum=0,maximum=100,default=100"`
	SuccessHPFactor    float64  `json:"successHPFactor,omitempty" jsonschema:"description=Percent weight rescaling the success chance by damage over max health"`
	SuccessHPFactorCap *bool    `json:"successHPFactorCap,omitempty" jsonschema:"default=true"`

	Effects []EffectDocument `json:"effects,omitempty" jsonschema:"title=Effect casts,description=Independent effect rolls executed on success"`

	ImpactData      string `json:"impactData,omitempty"`
	Message         string `json:"message,omitempty"`
	MessageFloating string `json:"messageFloating,omitempty"`
	HitSound        string `json:"hitSound,omitempty"`

	FloatingColorSelf  *uint32 `json:"floatingColorSelf,omitempty" jsonschema:"default=16728128"`
	FloatingColorEnemy *uint32 `json:"floatingColorEnemy,omitempty" jsonschema:"default=16762880"`
	FloatingTextSize   *int    `json:"floatingTextSize,omitempty" jsonschema:"default=24"`

	Sex      string `json:"sex,omitempty" jsonschema:"enum=,enum=M,enum=F"`
	AmmoType string `json:"ammoType,omitempty" jsonschema:"enum=,enum=both,enum=arrow,enum=bolt"`
	EditorID string `json:"editorId,omitempty" jsonschema:"description=Regular expression matched against the target's stable identifier"`

	RaceInclude []string `json:"raceInclude,omitempty"`
	RaceExclude []string `json:"raceExclude,omitempty"`

	// Keyword filter strings use domain prefixes A: (actor), E: (equipment),
	// M: (active effect), S: (weapon/ammo); keywords join with + and negate
	// with a leading -.
	KeywordInclude []string `json:"keywordInclude,omitempty"`
	KeywordExclude []string `json:"keywordExclude,omitempty"`
}

// EffectDocument pairs a castable effect with its base chance.
type EffectDocument struct {
	Effect string `json:"effect" jsonschema:"minLength=1,required"`
	Chance int    `json:"chance" jsonschema:"minimum=0,maximum=100"`
}
