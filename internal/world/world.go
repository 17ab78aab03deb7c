package world

import (
	"context"
	"fmt"
	"math/rand"

	"nock-and-loose/server/internal/combat"
	"nock-and-loose/server/logging"
	"nock-and-loose/server/logging/locational"
)

const (
	arrowSpeed = 60.0
	hitRadius  = 2.5
)

// RNGFactory produces deterministic RNG instances for world subsystems.
type RNGFactory func(rootSeed, label string) *rand.Rand

// HitReport is the feed payload describing one resolved hit.
type HitReport struct {
	Tick       uint64   `json:"tick"`
	Shooter    string   `json:"shooter"`
	Target     string   `json:"target"`
	Part       string   `json:"part"`
	Matched    bool     `json:"matched"`
	Multiplier float64  `json:"multiplier"`
	Damage     float64  `json:"damage"`
	Deflected  bool     `json:"deflected"`
	Reward     float64  `json:"reward,omitempty"`
	Texts      []string `json:"texts,omitempty"`
	Floating   []string `json:"floating,omitempty"`
	Sounds     []string `json:"sounds,omitempty"`
}

// Deps bundles runtime dependencies required to construct a World instance.
type Deps struct {
	Publisher logging.Publisher
	RNG       RNGFactory
	// Reports receives one entry per resolved hit; nil drops them.
	Reports func(HitReport)
}

// World owns the scripted demo simulation: a player archer volleying at a
// row of targets, with every hit routed through the location rule engine.
type World struct {
	config Config
	seed   string

	publisher logging.Publisher
	rng       *rand.Rand
	reports   func(HitReport)

	engine *combat.Engine

	actors      map[string]*ActorState
	actorOrder  []string
	projectiles []*ProjectileState

	effectDefs map[string]*EffectDefinitionState
	identities map[string]string

	archerID   string
	nextTarget int
	nextShotID int

	tick    uint64
	pending *HitReport
}

// New constructs a world instance with seeded RNG and the default cast of
// actors. Install a rule set on Engine before stepping.
func New(cfg Config, deps Deps) *World {
	normalized := cfg.normalized()

	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	w := &World{
		config:     normalized,
		seed:       normalized.Seed,
		publisher:  publisher,
		rng:        factory(normalized.Seed, "world"),
		reports:    deps.Reports,
		actors:     make(map[string]*ActorState),
		effectDefs: defaultEffectDefinitions(),
		identities: make(map[string]string),
	}

	w.engine = combat.NewEngine(combat.EngineConfig{
		Host:      w,
		Presenter: w,
		Identity:  w,
		Publisher: publisher,
		RNG:       factory(normalized.Seed, "locational"),
	})

	w.seedActors()
	return w
}

// Engine exposes the rule engine for catalog installation and reload.
func (w *World) Engine() *combat.Engine { return w.engine }

// Actor returns the actor with the given id.
func (w *World) Actor(id string) (*ActorState, bool) {
	actor, ok := w.actors[id]
	return actor, ok
}

func (w *World) seedActors() {
	archer := w.addActor(&ActorState{
		id:        "player-1",
		name:      "Fletch",
		player:    true,
		health:    100,
		maxHealth: 100,
		race:      "NordRace",
		sex:       combat.SexFemale,
		traits:    NewTraitSet("ActorTypeNPC"),
		position:  combat.Vec3{X: 0, Y: 0, Z: 60},
		extents:   combat.Vec3{X: 16, Y: 16, Z: 60},
	}, "FletchTheArcher")
	archer.worn = []*Item{
		{Name: "Hunting Bow", Traits: NewTraitSet("WeapTypeBow")},
		{Name: "Leather Armor", Traits: NewTraitSet("ArmorCuirass", "ArmorLightArmor")},
	}
	w.archerID = archer.id

	bandit := w.addActor(&ActorState{
		id:        "npc-bandit",
		name:      "Bandit",
		health:    120,
		maxHealth: 120,
		race:      "NordRace",
		sex:       combat.SexMale,
		traits:    NewTraitSet("ActorTypeNPC"),
		position:  combat.Vec3{X: 80, Y: 10, Z: 60},
		extents:   combat.Vec3{X: 16, Y: 16, Z: 62},
	}, "BanditMarauder")
	bandit.worn = []*Item{
		{Name: "Iron Shield", Traits: NewTraitSet("ArmorShield")},
	}

	draugr := w.addActor(&ActorState{
		id:        "npc-draugr",
		name:      "Draugr",
		health:    90,
		maxHealth: 90,
		race:      "DraugrRace",
		sex:       combat.SexMale,
		traits:    NewTraitSet("ActorTypeNPC", "ActorTypeUndead"),
		position:  combat.Vec3{X: 85, Y: -25, Z: 60},
		extents:   combat.Vec3{X: 16, Y: 16, Z: 64},
	}, "DraugrRestless")
	draugr.worn = []*Item{
		{Name: "Ancient Helm", Traits: NewTraitSet("ArmorHelmet")},
	}

	w.addActor(&ActorState{
		id:        "npc-ghost",
		name:      "Ghost",
		health:    70,
		maxHealth: 70,
		race:      "NordRaceGhost",
		traits:    NewTraitSet("ActorTypeNPC", "ActorTypeGhost"),
		position:  combat.Vec3{X: 75, Y: 40, Z: 60},
		extents:   combat.Vec3{X: 14, Y: 14, Z: 58},
	}, "RestlessSpirit")

	for _, actor := range w.actors {
		actor.skeleton = BuildHumanoidSkeleton(actor.position)
	}
}

func (w *World) addActor(actor *ActorState, editorID string) *ActorState {
	w.actors[actor.id] = actor
	w.actorOrder = append(w.actorOrder, actor.id)
	if editorID != "" {
		w.identities[actor.id] = editorID
	}
	return actor
}

// Step advances the world by dt seconds: effects age, the archer volleys,
// and in-flight arrows move and land.
func (w *World) Step(ctx context.Context, dt float64) {
	w.tick++

	for _, actor := range w.actors {
		for _, effect := range actor.effects {
			effect.advance(dt)
		}
	}

	if w.config.VolleyPeriod > 0 && w.tick%uint64(w.config.VolleyPeriod) == 0 {
		w.loose()
	}

	w.advanceProjectiles(ctx, dt)
}

// loose fires one arrow from the archer at the next living target.
func (w *World) loose() {
	archer, ok := w.actors[w.archerID]
	if !ok || !archer.IsAlive() {
		return
	}
	target := w.pickTarget()
	if target == nil {
		return
	}

	aim := w.pickAimPoint(target)
	direction, distance := aim.Sub(archer.position).Normalized()
	if distance == 0 || distance > w.config.ArcherRange {
		return
	}

	w.nextShotID++
	w.projectiles = append(w.projectiles, &ProjectileState{
		id:      fmt.Sprintf("arrow-%d", w.nextShotID),
		shooter: archer.id,
		target:  target.id,
		weapon:  archer.worn[0],
		ammo: &AmmoForm{
			Name:   "Iron Arrow",
			Traits: NewTraitSet("VendorItemArrow"),
			Class:  combat.AmmoArrow,
		},
		position: archer.position,
		velocity: direction.Scale(arrowSpeed),
		sticks:   true,
	})
}

func (w *World) pickTarget() *ActorState {
	for range w.actorOrder {
		id := w.actorOrder[w.nextTarget%len(w.actorOrder)]
		w.nextTarget++
		actor := w.actors[id]
		if actor == nil || actor.id == w.archerID || !actor.IsAlive() {
			continue
		}
		return actor
	}
	return nil
}

// pickAimPoint chooses a random collision node on the target with a little
// jitter, so successive volleys land on different body parts.
func (w *World) pickAimPoint(target *ActorState) combat.Vec3 {
	var nodes []*combat.SkeletonNode
	var collect func(node *combat.SkeletonNode)
	collect = func(node *combat.SkeletonNode) {
		if node == nil {
			return
		}
		if node.HasCollision {
			nodes = append(nodes, node)
		}
		for _, child := range node.Children {
			collect(child)
		}
	}
	collect(target.skeleton)
	if len(nodes) == 0 {
		return target.position
	}
	aim := nodes[w.rng.Intn(len(nodes))].World
	aim.X += (w.rng.Float64() - 0.5) * 3
	aim.Z += (w.rng.Float64() - 0.5) * 3
	return aim
}

func (w *World) advanceProjectiles(ctx context.Context, dt float64) {
	alive := w.projectiles[:0]
	for _, projectile := range w.projectiles {
		projectile.advance(dt)

		target := w.actors[projectile.target]
		if target == nil || !target.IsAlive() {
			continue
		}
		if combat.DistanceSquared(projectile.position, w.nearestNodePoint(target, projectile.position)) > hitRadius*hitRadius {
			if projectile.flightTime < 10 {
				alive = append(alive, projectile)
			}
			continue
		}

		w.land(ctx, projectile, target)
	}
	w.projectiles = alive
}

// nearestNodePoint finds the closest collision node position, the demo's
// stand-in for a physics contact point.
func (w *World) nearestNodePoint(target *ActorState, from combat.Vec3) combat.Vec3 {
	best := target.position
	bestDist := combat.DistanceSquared(from, best)
	var walk func(node *combat.SkeletonNode)
	walk = func(node *combat.SkeletonNode) {
		if node == nil {
			return
		}
		if node.HasCollision {
			if d := combat.DistanceSquared(from, node.World); d < bestDist {
				best, bestDist = node.World, d
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(target.skeleton)
	return best
}

// land runs one impact through the engine's decide pass and then the host's
// apply pass, consuming the staged override exactly once.
func (w *World) land(ctx context.Context, projectile *ProjectileState, target *ActorState) {
	shooter := w.actors[projectile.shooter]
	impact := projectile.position

	report := &HitReport{
		Tick:    w.tick,
		Shooter: projectile.shooter,
		Target:  target.id,
		Damage:  w.config.BaseDamage,
	}
	w.pending = report

	result := w.engine.ProcessHit(ctx, combat.HitEvent{
		Projectile: projectile,
		Target:     target,
		Shooter:    shooter,
		Impact:     impact,
		Damage:     w.config.BaseDamage,
		Tick:       w.tick,
	})

	multiplier := 1.0
	if shooter != nil {
		if override, ok := w.engine.ConsumeOverride(shooter.id, target.id, impact); ok {
			multiplier = override.DamageMult
			locational.OverrideConsumed(ctx, w.publisher, w.tick, entityRef(shooter), entityRef(target), locational.OverridePayload{
				Part:       result.PartName,
				DamageMult: override.DamageMult,
				Impact:     overrideID(override.Impact),
			})
		}
	}
	target.ApplyDamage(w.config.BaseDamage * multiplier)

	report.Part = result.PartName
	report.Matched = result.Matched
	report.Multiplier = multiplier
	report.Damage = w.config.BaseDamage * multiplier
	report.Deflected = result.Deflected
	report.Reward = result.RewardMult

	w.pending = nil
	if w.reports != nil {
		w.reports(*report)
	}
}

func entityRef(actor *ActorState) logging.EntityRef {
	if actor == nil {
		return logging.EntityRef{}
	}
	kind := logging.EntityKindNPC
	if actor.player {
		kind = logging.EntityKindPlayer
	}
	return logging.EntityRef{ID: actor.id, Kind: kind}
}

func overrideID(impact combat.ImpactOverride) string {
	if impact == nil {
		return ""
	}
	return impact.ID()
}
