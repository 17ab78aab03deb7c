package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"nock-and-loose/server/internal/combat"
)

type source interface {
	Load() ([]byte, error)
	Path() string
}

type fileSource struct {
	path string
}

func (f fileSource) Load() ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f fileSource) Path() string {
	return f.path
}

var sectionPattern = regexp.MustCompile(`^Location([0-9]+)$`)

// Resolver loads the rules document and compiles it into an immutable
// combat.RuleSet. Call Reload to pick up on-disk changes; readers always see
// either the previous complete generation or the new one.
type Resolver struct {
	mu      sync.RWMutex
	sources []source
	current *combat.RuleSet
}

// DefaultPaths returns the canonical rules document locations relative to the
// server module root.
func DefaultPaths() []string {
	return []string{
		filepath.Join("config", "locations", "rules.json"),
		filepath.Join("..", "config", "locations", "rules.json"),
	}
}

// Load constructs a Resolver backed by the provided file paths. Later paths
// override earlier ones, supporting local overlays during development.
func Load(paths ...string) (*Resolver, error) {
	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		sources = append(sources, fileSource{path: trimmed})
	}
	return NewResolver(sources...)
}

// NewResolver constructs a Resolver from arbitrary sources. Tests supply
// in-memory sources while production code uses files.
func NewResolver(sources ...source) (*Resolver, error) {
	r := &Resolver{sources: append([]source(nil), sources...)}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses the sources and atomically installs the result. A parse
// or compile failure leaves the previous generation in place.
func (r *Resolver) Reload() error {
	if r == nil {
		return nil
	}
	var built *combat.RuleSet
	found := false
	for _, src := range r.sources {
		data, err := src.Load()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("catalog: failed loading %s: %w", src.Path(), err)
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("catalog: failed parsing %s: %w", src.Path(), err)
		}
		set, err := buildRuleSet(doc)
		if err != nil {
			return fmt.Errorf("catalog: %s: %w", src.Path(), err)
		}
		built = set
		found = true
	}
	if !found {
		return fmt.Errorf("catalog: no rules document found")
	}

	r.mu.Lock()
	r.current = built
	r.mu.Unlock()
	return nil
}

// RuleSet returns the current generation.
func (r *Resolver) RuleSet() *combat.RuleSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func buildRuleSet(doc Document) (*combat.RuleSet, error) {
	settings, err := buildSettings(doc.Settings)
	if err != nil {
		return nil, err
	}

	exclude, err := compilePattern(doc.LocationExclude)
	if err != nil {
		return nil, fmt.Errorf("locationExclude: %w", err)
	}
	firstPerson, err := compilePattern(doc.FirstPersonNodes)
	if err != nil {
		return nil, fmt.Errorf("firstPersonNodes: %w", err)
	}

	sections, err := decodeLocations(doc.Locations)
	if err != nil {
		return nil, err
	}

	rules := make([]combat.LocationRule, 0, len(sections))
	for _, section := range sections {
		rule, err := buildRule(section)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", section.name, err)
		}
		rules = append(rules, rule)
	}

	return &combat.RuleSet{
		Rules:            rules,
		Settings:         settings,
		ExcludeNodes:     exclude,
		FirstPersonNodes: firstPerson,
	}, nil
}

type namedLocation struct {
	name string
	doc  LocationDocument
}

// decodeLocations accepts the rules either as an ordered array or as an
// object keyed by LocationN sections, ordered by ascending numeric suffix.
func decodeLocations(raw json.RawMessage) ([]namedLocation, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing locations block")
	}

	var asArray []LocationDocument
	if err := json.Unmarshal(raw, &asArray); err == nil {
		sections := make([]namedLocation, 0, len(asArray))
		for i, doc := range asArray {
			sections = append(sections, namedLocation{name: fmt.Sprintf("Location%d", i), doc: doc})
		}
		return sections, nil
	}

	var asObject map[string]LocationDocument
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return nil, fmt.Errorf("locations must be an array or a LocationN-keyed object: %w", err)
	}

	sections := make([]namedLocation, 0, len(asObject))
	for name, doc := range asObject {
		if !sectionPattern.MatchString(name) {
			return nil, fmt.Errorf("unrecognized location section %q", name)
		}
		sections = append(sections, namedLocation{name: name, doc: doc})
	}
	sort.Slice(sections, func(i, j int) bool {
		return sectionNumber(sections[i].name) < sectionNumber(sections[j].name)
	})
	return sections, nil
}

func sectionNumber(name string) int {
	match := sectionPattern.FindStringSubmatch(name)
	if match == nil {
		return 0
	}
	n, _ := strconv.Atoi(match[1])
	return n
}

func buildSettings(doc SettingsDocument) (combat.GlobalSettings, error) {
	mode, err := parseNotificationMode(doc.HitNotificationMode)
	if err != nil {
		return combat.GlobalSettings{}, err
	}

	return combat.GlobalSettings{
		DebugNotification:       doc.DebugNotification,
		PlayerHitNotification:   doc.PlayerHitNotification,
		PlayerHitSound:          boolOr(doc.PlayerHitSound, true),
		HitEffectNotification:   boolOr(doc.HitEffectNotification, true),
		NPCFloatingNotification: doc.NPCHitNotification,
		NotificationMode:        mode,
		IgnoreHitboxCheck:       doc.IgnoreHitboxCheck,
		EffectHPFactor:          floatOr(doc.HPFactor, 50) / 100.0,
		EffectChanceCap:         boolOr(doc.HPFactorCap, true),
		AmplifyEffects:          boolOr(doc.AmplifyEffects, true),
		FloatingOffsetX:         doc.FloatingTextOffsetX,
		FloatingOffsetY:         floatOr(doc.FloatingTextOffsetY, 0.04),
		LocationRewardScaling:   doc.Reward.LocationScaling,
		DifficultyRewardScaling: doc.Reward.DifficultyScaling,
		RewardCap:               doc.Reward.Cap,
		RewardNotification:      doc.Reward.Notification,
		FlightTimeFactor:        floatOr(doc.Reward.FlightTimeFactor, 1),
		DistanceFactor:          floatOr(doc.Reward.DistanceFactor, 1),
		MovementFactor:          floatOr(doc.Reward.MovementFactor, 1),
	}, nil
}

func buildRule(section namedLocation) (combat.LocationRule, error) {
	doc := section.doc

	pattern, err := compilePattern(doc.Regexp)
	if err != nil {
		return combat.LocationRule{}, fmt.Errorf("regexp: %w", err)
	}

	sex, err := parseSex(doc.Sex)
	if err != nil {
		return combat.LocationRule{}, err
	}
	ammo, err := parseAmmoType(doc.AmmoType)
	if err != nil {
		return combat.LocationRule{}, err
	}

	identity, err := compilePattern(doc.EditorID)
	if err != nil {
		return combat.LocationRule{}, fmt.Errorf("editorId: %w", err)
	}
	raceInclude, err := compilePatterns(doc.RaceInclude)
	if err != nil {
		return combat.LocationRule{}, fmt.Errorf("raceInclude: %w", err)
	}
	raceExclude, err := compilePatterns(doc.RaceExclude)
	if err != nil {
		return combat.LocationRule{}, fmt.Errorf("raceExclude: %w", err)
	}

	include, err := parseFilterGroups(doc.KeywordInclude)
	if err != nil {
		return combat.LocationRule{}, fmt.Errorf("keywordInclude: %w", err)
	}
	exclude, err := parseFilterGroups(doc.KeywordExclude)
	if err != nil {
		return combat.LocationRule{}, fmt.Errorf("keywordExclude: %w", err)
	}

	effects := make([]combat.EffectChance, 0, len(doc.Effects))
	for _, effect := range doc.Effects {
		if strings.TrimSpace(effect.Effect) == "" {
			return combat.LocationRule{}, fmt.Errorf("effect entry missing identifier")
		}
		effects = append(effects, combat.EffectChance{EffectID: effect.Effect, Chance: effect.Chance})
	}

	return combat.LocationRule{
		Name:               section.name,
		Enabled:            doc.Regexp != "",
		Pattern:            pattern,
		Continue:           doc.Continue,
		DamageMult:         floatOr(doc.Multiplier, 1),
		Difficulty:         floatOr(doc.Difficulty, 1),
		Deflect:            doc.Deflect,
		SuccessChance:      intOr(doc.SuccessChance, 100),
		SuccessHPFactor:    doc.SuccessHPFactor / 100.0,
		SuccessHPFactorCap: boolOr(doc.SuccessHPFactorCap, true),
		Effects:            effects,
		ImpactOverrideID:   doc.ImpactData,
		HitSound:           doc.HitSound,
		Message:            doc.Message,
		MessageFloating:    doc.MessageFloating,
		FloatingColorSelf:  uint32Or(doc.FloatingColorSelf, 0xFF4040),
		FloatingColorEnemy: uint32Or(doc.FloatingColorEnemy, 0xFFC800),
		FloatingSize:       intOr(doc.FloatingTextSize, 24),
		Filter: combat.TargetFilter{
			Include:     include,
			Exclude:     exclude,
			RaceInclude: raceInclude,
			RaceExclude: raceExclude,
			Sex:         sex,
			Identity:    identity,
			Ammo:        ammo,
		},
	}, nil
}

// compilePattern compiles an anchored pattern; configured expressions match
// whole names, never substrings. Empty expressions compile to nil.
func compilePattern(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	compiled, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return compiled, nil
}

func compilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled, err := compilePattern(expr)
		if err != nil {
			return nil, err
		}
		if compiled != nil {
			patterns = append(patterns, compiled)
		}
	}
	return patterns, nil
}

func parseNotificationMode(value string) (combat.NotificationMode, error) {
	switch strings.ToLower(value) {
	case "", "floating":
		return combat.NotifyFloating, nil
	case "none":
		return combat.NotifyNone, nil
	case "screen":
		return combat.NotifyScreen, nil
	case "both":
		return combat.NotifyBoth, nil
	default:
		return 0, fmt.Errorf("unknown hitNotificationMode %q", value)
	}
}

func parseSex(value string) (combat.Sex, error) {
	switch strings.ToUpper(value) {
	case "":
		return combat.SexAny, nil
	case "M":
		return combat.SexMale, nil
	case "F":
		return combat.SexFemale, nil
	default:
		return 0, fmt.Errorf("unknown sex constraint %q", value)
	}
}

func parseAmmoType(value string) (combat.AmmoCategory, error) {
	switch strings.ToLower(value) {
	case "", "both":
		return combat.AmmoAny, nil
	case "arrow":
		return combat.AmmoArrow, nil
	case "bolt":
		return combat.AmmoBolt, nil
	default:
		return 0, fmt.Errorf("unknown ammoType %q", value)
	}
}

func boolOr(value *bool, def bool) bool {
	if value == nil {
		return def
	}
	return *value
}

func floatOr(value *float64, def float64) float64 {
	if value == nil {
		return def
	}
	return *value
}

func intOr(value *int, def int) int {
	if value == nil {
		return def
	}
	return *value
}

func uint32Or(value *uint32, def uint32) uint32 {
	if value == nil {
		return def
	}
	return *value
}
