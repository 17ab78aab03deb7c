package catalog

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"nock-and-loose/server/internal/combat"
)

type memSource struct {
	name string
	data string
	err  error
}

func (m *memSource) Load() ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []byte(m.data), nil
}

func (m *memSource) Path() string { return m.name }

func mustResolver(t *testing.T, data string) *Resolver {
	t.Helper()
	resolver, err := NewResolver(&memSource{name: "test.json", data: data})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return resolver
}

func TestResolverLoadsArraySections(t *testing.T) {
	resolver := mustResolver(t, `{
		"settings": {},
		"locations": [
			{"regexp": "NPC Head.*", "multiplier": 3.0},
			{"regexp": "NPC Spine.*"}
		]
	}`)

	set := resolver.RuleSet()
	if len(set.Rules) != 2 {
		t.Fatalf("expected two rules, got %d", len(set.Rules))
	}
	if set.Rules[0].DamageMult != 3 {
		t.Fatalf("expected multiplier 3, got %v", set.Rules[0].DamageMult)
	}
	if set.Rules[1].DamageMult != 1 {
		t.Fatalf("omitted multiplier defaults to 1, got %v", set.Rules[1].DamageMult)
	}
	if !set.Rules[0].MatchesPart("NPC Head [Head]") {
		t.Fatalf("pattern must match the whole part name")
	}
	if set.Rules[0].MatchesPart("Some NPC Head [Head] Extra") {
		t.Fatalf("patterns are anchored, substring matches must fail")
	}
}

func TestResolverOrdersObjectSectionsNumerically(t *testing.T) {
	resolver := mustResolver(t, `{
		"settings": {},
		"locations": {
			"Location10": {"regexp": "NPC Foot.*"},
			"Location2": {"regexp": "NPC Spine.*"},
			"Location0": {"regexp": "NPC Head.*"}
		}
	}`)

	set := resolver.RuleSet()
	wantOrder := []string{"Location0", "Location2", "Location10"}
	if len(set.Rules) != len(wantOrder) {
		t.Fatalf("expected %d rules, got %d", len(wantOrder), len(set.Rules))
	}
	for i, name := range wantOrder {
		if set.Rules[i].Name != name {
			t.Fatalf("rule %d: expected %s, got %s", i, name, set.Rules[i].Name)
		}
	}
}

func TestResolverRejectsUnknownSectionKeys(t *testing.T) {
	_, err := NewResolver(&memSource{name: "test.json", data: `{
		"settings": {},
		"locations": {"Torso": {"regexp": "NPC Spine.*"}}
	}`})
	if err == nil || !strings.Contains(err.Error(), "Torso") {
		t.Fatalf("expected an unrecognized-section error, got %v", err)
	}
}

func TestResolverDefaultsAndPercentScaling(t *testing.T) {
	resolver := mustResolver(t, `{
		"settings": {},
		"locations": [
			{"regexp": "NPC Leg.*", "successChance": 75, "successHPFactor": 50}
		]
	}`)

	set := resolver.RuleSet()
	settings := set.Settings
	if settings.EffectHPFactor != 0.5 {
		t.Fatalf("default hpFactor 50 percent scales to 0.5, got %v", settings.EffectHPFactor)
	}
	if !settings.EffectChanceCap || !settings.AmplifyEffects || !settings.PlayerHitSound {
		t.Fatalf("boolean defaults must hold: %+v", settings)
	}
	if settings.NotificationMode != combat.NotifyFloating {
		t.Fatalf("default notification mode is floating, got %v", settings.NotificationMode)
	}
	if settings.FloatingOffsetY != 0.04 {
		t.Fatalf("default floating offset, got %v", settings.FloatingOffsetY)
	}
	if settings.FlightTimeFactor != 1 || settings.DistanceFactor != 1 || settings.MovementFactor != 1 {
		t.Fatalf("reward factors default to 1: %+v", settings)
	}

	rule := set.Rules[0]
	if rule.SuccessChance != 75 {
		t.Fatalf("expected success chance 75, got %d", rule.SuccessChance)
	}
	if rule.SuccessHPFactor != 0.5 {
		t.Fatalf("success HP factor 50 percent scales to 0.5, got %v", rule.SuccessHPFactor)
	}
	if !rule.SuccessHPFactorCap {
		t.Fatalf("success HP factor cap defaults on")
	}
	if rule.FloatingColorSelf != 0xFF4040 || rule.FloatingColorEnemy != 0xFFC800 {
		t.Fatalf("default floating colors: %x %x", rule.FloatingColorSelf, rule.FloatingColorEnemy)
	}
	if rule.FloatingSize != 24 {
		t.Fatalf("default floating size 24, got %d", rule.FloatingSize)
	}
}

func TestResolverSectionWithoutRegexpIsDisabled(t *testing.T) {
	resolver := mustResolver(t, `{
		"settings": {},
		"locations": [ {"multiplier": 2.0} ]
	}`)

	rule := resolver.RuleSet().Rules[0]
	if rule.Enabled {
		t.Fatalf("a section without a pattern loads disabled")
	}
	if rule.MatchesPart("NPC Head [Head]") {
		t.Fatalf("disabled rules match nothing")
	}
}

func TestResolverFatalOnBadPattern(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad location regexp", `{"settings": {}, "locations": [{"regexp": "("}]}`},
		{"bad exclude", `{"settings": {}, "locationExclude": "(", "locations": []}`},
		{"bad race pattern", `{"settings": {}, "locations": [{"regexp": "NPC Head.*", "raceInclude": ["("]}]}`},
		{"bad sex token", `{"settings": {}, "locations": [{"regexp": "NPC Head.*", "sex": "Q"}]}`},
		{"bad ammo token", `{"settings": {}, "locations": [{"regexp": "NPC Head.*", "ammoType": "rock"}]}`},
		{"bad filter domain", `{"settings": {}, "locations": [{"regexp": "NPC Head.*", "keywordInclude": ["X:Key"]}]}`},
		{"bad notification mode", `{"settings": {"hitNotificationMode": "shout"}, "locations": []}`},
		{"not json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewResolver(&memSource{name: "test.json", data: tc.data}); err == nil {
				t.Fatalf("expected a load error")
			}
		})
	}
}

func TestResolverReloadKeepsPreviousGenerationOnFailure(t *testing.T) {
	src := &memSource{name: "test.json", data: `{
		"settings": {},
		"locations": [ {"regexp": "NPC Head.*", "multiplier": 3.0} ]
	}`}
	resolver, err := NewResolver(src)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	before := resolver.RuleSet()

	src.data = `{"settings": {}, "locations": [{"regexp": "("}]}`
	if err := resolver.Reload(); err == nil {
		t.Fatalf("expected reload to fail")
	}
	if resolver.RuleSet() != before {
		t.Fatalf("failed reload must keep the previous generation")
	}

	src.data = `{"settings": {}, "locations": [{"regexp": "NPC Spine.*"}]}`
	if err := resolver.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if resolver.RuleSet() == before {
		t.Fatalf("successful reload must install a new generation")
	}
}

func TestResolverLaterSourceWins(t *testing.T) {
	base := &memSource{name: "base.json", data: `{
		"settings": {},
		"locations": [ {"regexp": "NPC Head.*", "multiplier": 2.0} ]
	}`}
	overlay := &memSource{name: "overlay.json", data: `{
		"settings": {},
		"locations": [ {"regexp": "NPC Head.*", "multiplier": 5.0} ]
	}`}

	resolver, err := NewResolver(base, overlay)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := resolver.RuleSet().Rules[0].DamageMult; got != 5 {
		t.Fatalf("overlay must win, got %v", got)
	}
}

func TestResolverSkipsMissingSources(t *testing.T) {
	missing := &memSource{name: "missing.json", err: fs.ErrNotExist}
	present := &memSource{name: "present.json", data: `{
		"settings": {},
		"locations": [ {"regexp": "NPC Head.*"} ]
	}`}

	resolver, err := NewResolver(missing, present)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(resolver.RuleSet().Rules) != 1 {
		t.Fatalf("present source must load")
	}

	if _, err := NewResolver(missing); err == nil {
		t.Fatalf("no loadable source must be an error")
	}

	broken := &memSource{name: "broken.json", err: errors.New("permission denied")}
	if _, err := NewResolver(broken); err == nil {
		t.Fatalf("non-missing load errors must propagate")
	}
}

func TestResolverShippedConfigLoads(t *testing.T) {
	resolver, err := Load("../../config/locations/rules.json")
	if err != nil {
		t.Fatalf("shipped configuration must load: %v", err)
	}
	set := resolver.RuleSet()
	if len(set.Rules) == 0 {
		t.Fatalf("shipped configuration carries rules")
	}
	for _, rule := range set.Rules {
		if !rule.Enabled {
			t.Fatalf("every shipped section is enabled, %s is not", rule.Name)
		}
	}
}
