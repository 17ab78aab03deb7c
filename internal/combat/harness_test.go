package combat

import "regexp"

type traitSet map[string]struct{}

func traits(keywords ...string) traitSet {
	set := make(traitSet, len(keywords))
	for _, keyword := range keywords {
		set[keyword] = struct{}{}
	}
	return set
}

func (s traitSet) HasTrait(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

type fakeEffectDef struct {
	traitSet
	name string
	peak bool
}

func (d *fakeEffectDef) Name() string        { return d.name }
func (d *fakeEffectDef) PeakValueOnly() bool { return d.peak }

type fakeEffect struct {
	def       *fakeEffectDef
	caster    string
	elapsed   float64
	powerMag  bool
	magnitude float64
	duration  float64
	active    bool
}

func (e *fakeEffect) Active() bool                      { return e.active }
func (e *fakeEffect) Definition() EffectDefinition      { return e.def }
func (e *fakeEffect) CasterID() string                  { return e.caster }
func (e *fakeEffect) ElapsedSeconds() float64           { return e.elapsed }
func (e *fakeEffect) PowerAffectsMagnitude() bool       { return e.powerMag }
func (e *fakeEffect) Magnitude() float64                { return e.magnitude }
func (e *fakeEffect) SetMagnitude(value float64)        { e.magnitude = value }
func (e *fakeEffect) Duration() float64                 { return e.duration }
func (e *fakeEffect) SetDuration(value float64)         { e.duration = value }

type fakeActor struct {
	traitSet
	id        string
	name      string
	alive     bool
	player    bool
	maxHealth float64
	race      string
	sex       Sex
	worn      []TraitSource
	effects   []ActiveEffect
	skeleton  *SkeletonNode
	velocity  Vec3
	extents   Vec3
	flying    bool
}

func (a *fakeActor) ID() string                    { return a.id }
func (a *fakeActor) Name() string                  { return a.name }
func (a *fakeActor) IsAlive() bool                 { return a.alive }
func (a *fakeActor) IsPlayer() bool                { return a.player }
func (a *fakeActor) MaxHealth() float64            { return a.maxHealth }
func (a *fakeActor) RaceName() string              { return a.race }
func (a *fakeActor) Sex() Sex                      { return a.sex }
func (a *fakeActor) WornEquipment() []TraitSource  { return a.worn }
func (a *fakeActor) ActiveEffects() []ActiveEffect { return a.effects }
func (a *fakeActor) Skeleton() *SkeletonNode       { return a.skeleton }
func (a *fakeActor) Velocity() Vec3                { return a.velocity }
func (a *fakeActor) BodyExtents() Vec3             { return a.extents }
func (a *fakeActor) IsFlying() bool                { return a.flying }

func newFakeActor(id string) *fakeActor {
	return &fakeActor{
		traitSet:  traits(),
		id:        id,
		name:      id,
		alive:     true,
		maxHealth: 100,
		race:      "NordRace",
		extents:   Vec3{X: 16, Y: 16, Z: 65},
		skeleton:  testSkeleton(),
	}
}

type fakeAmmo struct {
	traitSet
	category AmmoCategory
}

func (a *fakeAmmo) Category() AmmoCategory { return a.category }

type fakeProjectile struct {
	weapon     TraitSource
	ammo       AmmoSource
	flightTime float64
	travelled  float64
	velocity   Vec3
	hitscan    bool
	arrow      bool
	sticks     bool
}

func (p *fakeProjectile) Weapon() TraitSource {
	if p.weapon == nil {
		return nil
	}
	return p.weapon
}

func (p *fakeProjectile) Ammo() AmmoSource {
	if p.ammo == nil {
		return nil
	}
	return p.ammo
}

func (p *fakeProjectile) FlightTime() float64        { return p.flightTime }
func (p *fakeProjectile) DistanceTravelled() float64 { return p.travelled }
func (p *fakeProjectile) Velocity() Vec3             { return p.velocity }
func (p *fakeProjectile) Hitscan() bool              { return p.hitscan }
func (p *fakeProjectile) ArrowClass() bool           { return p.arrow }
func (p *fakeProjectile) SticksOnImpact() bool       { return p.sticks }

func newFakeProjectile() *fakeProjectile {
	return &fakeProjectile{
		weapon: traits("WeapTypeBow"),
		ammo:   &fakeAmmo{traitSet: traits("VendorItemArrow"), category: AmmoArrow},
		arrow:  true,
		sticks: true,
	}
}

type fakeImpact struct {
	id string
}

func (f fakeImpact) ID() string { return f.id }

type castRecord struct {
	effect string
	source string
	target string
}

type fakeHost struct {
	validTarget bool
	firstPerson bool
	effects     map[string]EffectDefinition
	impacts     map[string]ImpactOverride
	baseDamage  float64

	casts      []castRecord
	deflected  []Projectile
	sounds     []string
	screenText []string
	experience float64
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		validTarget: true,
		effects:     make(map[string]EffectDefinition),
		impacts:     make(map[string]ImpactOverride),
		baseDamage:  10,
	}
}

func (h *fakeHost) CheckValidTarget(shooter, target Actor) bool { return h.validTarget }

func (h *fakeHost) LookupEffect(id string) (EffectDefinition, bool) {
	def, ok := h.effects[id]
	return def, ok
}

func (h *fakeHost) CastEffect(def EffectDefinition, source, target Actor) {
	h.casts = append(h.casts, castRecord{effect: def.Name(), source: source.ID(), target: target.ID()})
}

func (h *fakeHost) LookupImpact(id string) (ImpactOverride, bool) {
	impact, ok := h.impacts[id]
	return impact, ok
}

func (h *fakeHost) DeflectProjectile(p Projectile)      { h.deflected = append(h.deflected, p) }
func (h *fakeHost) PlaySound(name string)               { h.sounds = append(h.sounds, name) }
func (h *fakeHost) ShowScreenText(text string)          { h.screenText = append(h.screenText, text) }
func (h *fakeHost) WeaponBaseDamage(Actor) float64      { return h.baseDamage }
func (h *fakeHost) GrantExperience(_ Actor, a float64)  { h.experience += a }
func (h *fakeHost) FirstPersonView(Actor) bool          { return h.firstPerson }

type fakePresenter struct {
	ready   bool
	batches []FloatingBatch
}

func (p *fakePresenter) Ready() bool               { return p.ready }
func (p *fakePresenter) Present(batch FloatingBatch) { p.batches = append(p.batches, batch) }

type mapIdentity map[string]string

func (m mapIdentity) StableID(target Actor) (string, bool) {
	id, ok := m[target.ID()]
	return id, ok
}

// testSkeleton builds a small rig: pelvis at origin, spine above it, head on
// top, one arm with a shield hanging off the hand.
func testSkeleton() *SkeletonNode {
	root := NewSkeletonNode("NPC Root [Root]", Vec3{}, false)
	pelvis := NewSkeletonNode("NPC Pelvis [Pelv]", Vec3{Z: 0}, true)
	root.AttachChild(pelvis)
	spine := NewSkeletonNode("NPC Spine [Spn0]", Vec3{Z: 30}, true)
	pelvis.AttachChild(spine)
	head := NewSkeletonNode("NPC Head [Head]", Vec3{Z: 60}, true)
	spine.AttachChild(head)
	hand := NewSkeletonNode("NPC L Hand [LHnd]", Vec3{X: -25, Z: 35}, true)
	spine.AttachChild(hand)
	shield := NewSkeletonNode("SHIELD", Vec3{X: -32, Z: 35}, true)
	hand.AttachChild(shield)
	quiver := NewSkeletonNode("QUIVER", Vec3{Y: -8, Z: 35}, false)
	spine.AttachChild(quiver)
	return root
}

func headRule(name string, mult float64) LocationRule {
	return LocationRule{
		Name:          name,
		Enabled:       true,
		Pattern:       mustPattern("NPC Head.*"),
		DamageMult:    mult,
		Difficulty:    1,
		SuccessChance: 100,
	}
}

func mustPattern(expr string) *regexp.Regexp {
	return regexp.MustCompile("^(?:" + expr + ")$")
}
