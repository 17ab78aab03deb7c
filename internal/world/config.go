package world

import "strings"

const (
	DefaultSeed         = "prototype"
	DefaultArcherRange  = 90.0
	DefaultBaseDamage   = 14.0
	DefaultVolleyPeriod = 4
)

// Config tunes the scripted demo world.
type Config struct {
	Seed string `json:"seed"`
	// ArcherRange is the distance at which the archer starts loosing.
	ArcherRange float64 `json:"archerRange"`
	// BaseDamage is the raw damage carried by each shot before location
	// multipliers.
	BaseDamage float64 `json:"baseDamage"`
	// VolleyPeriod is the number of ticks between shots.
	VolleyPeriod int `json:"volleyPeriod"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.ArcherRange <= 0 {
		normalized.ArcherRange = DefaultArcherRange
	}
	if normalized.BaseDamage <= 0 {
		normalized.BaseDamage = DefaultBaseDamage
	}
	if normalized.VolleyPeriod <= 0 {
		normalized.VolleyPeriod = DefaultVolleyPeriod
	}
	return normalized
}

// Normalized exposes the normalization rules to callers that build configs
// by hand.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func DefaultConfig() Config {
	return Config{
		Seed:         DefaultSeed,
		ArcherRange:  DefaultArcherRange,
		BaseDamage:   DefaultBaseDamage,
		VolleyPeriod: DefaultVolleyPeriod,
	}
}
