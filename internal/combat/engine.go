package combat

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"nock-and-loose/server/logging"
	"nock-and-loose/server/logging/locational"
)

// HitEvent is the ephemeral value carried into ProcessHit for one collision.
type HitEvent struct {
	Projectile Projectile
	Target     Actor
	// Shooter may be nil for environmental sources such as traps.
	Shooter Actor
	// Impact is the world-space impact point, also the correlation key for
	// the later apply callback.
	Impact Vec3
	// Damage is the amount the hit just dealt, the basis for health-factor
	// scaling.
	Damage float64
	Tick   uint64
}

// EvaluationResult reports what a hit evaluation did. Side effects have
// already been commanded against the host by the time it is returned.
type EvaluationResult struct {
	PartName       string
	Matched        bool
	DamageMult     float64
	MaxDifficulty  float64
	Deflected      bool
	OverrideQueued bool
	RewardMult     float64
}

// EngineConfig bundles the collaborators the engine drives. Host is
// required; the rest default sensibly.
type EngineConfig struct {
	Host      Commands
	Presenter FloatingPresenter
	// Identity is the optional stable-identifier side table; identity rules
	// fail closed while it is nil.
	Identity  IdentityResolver
	Publisher logging.Publisher
	RNG       *rand.Rand
	Clock     func() time.Time
	// OverrideTTL bounds pending override lifetime; zero selects
	// DefaultOverrideTTL.
	OverrideTTL time.Duration
}

// Engine evaluates location rules against resolved hits and correlates the
// resulting overrides across the host's decide and apply callbacks. Rules are
// installed wholesale and swapped atomically, so in-flight hits always see a
// complete generation.
type Engine struct {
	host     Commands
	floats   *floatingBuffer
	identity IdentityResolver
	pub      logging.Publisher
	rng      *rand.Rand
	clock    func() time.Time
	ttl      time.Duration
	queue    *OverrideQueue
	rules    atomic.Pointer[RuleSet]
}

// NewEngine constructs an engine around the host collaborators.
func NewEngine(cfg EngineConfig) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	ttl := cfg.OverrideTTL
	if ttl <= 0 {
		ttl = DefaultOverrideTTL
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = logging.NopPublisher()
	}
	return &Engine{
		host:     cfg.Host,
		floats:   newFloatingBuffer(cfg.Presenter),
		identity: cfg.Identity,
		pub:      pub,
		rng:      cfg.RNG,
		clock:    clock,
		ttl:      ttl,
		queue:    NewOverrideQueue(),
	}
}

// InstallRules swaps in a freshly loaded rule set.
func (e *Engine) InstallRules(rs *RuleSet) {
	e.rules.Store(rs)
}

// Rules returns the currently installed generation, nil before the first
// install.
func (e *Engine) Rules() *RuleSet {
	return e.rules.Load()
}

// Queue exposes the override correlation queue for the host's apply-damage
// dispatch.
func (e *Engine) Queue() *OverrideQueue {
	return e.queue
}

// ConsumeOverride resolves the apply-side of a hit: it sweeps expired
// entries first, then removes the matching pending entry. An override whose
// TTL elapsed before the apply callback arrived is gone.
func (e *Engine) ConsumeOverride(aggressorID, targetID string, location Vec3) (PendingOverride, bool) {
	e.queue.Sweep(e.clock())
	return e.queue.TryConsume(aggressorID, targetID, location)
}

// ProcessHit runs the full per-hit pipeline: guards, part resolution, ordered
// rule matching with eligibility and probability gates, side effects, the
// override push, the experience reward, and the floating-text flush. Failure
// paths are silent no-ops; a missed bonus must never destabilize the combat
// loop.
func (e *Engine) ProcessHit(ctx context.Context, hit HitEvent) EvaluationResult {
	result := EvaluationResult{DamageMult: 1, MaxDifficulty: 1, RewardMult: 1}

	rules := e.rules.Load()
	if rules == nil || e.host == nil {
		return result
	}

	projectile := hit.Projectile
	target := hit.Target
	if projectile == nil || target == nil || !target.IsAlive() {
		return result
	}
	if projectile.Hitscan() || !projectile.ArrowClass() {
		return result
	}

	shooter := hit.Shooter
	if shooter != nil && !e.host.CheckValidTarget(shooter, target) {
		return result
	}

	shooterIsPlayer := shooter != nil && shooter.IsPlayer()
	targetIsPlayer := target.IsPlayer()
	firstPerson := targetIsPlayer && e.host.FirstPersonView(target)

	part, ok := ResolveHitPart(target.Skeleton(), hit.Impact, rules.ResolveOptions(firstPerson))
	if !ok {
		// Expected for malformed or off-body impacts.
		return result
	}
	result.PartName = part.Name

	settings := rules.Settings
	damage := hit.Damage
	cumulativeMult := 1.0
	maxDifficulty := 1.0
	matched := false
	var stagedImpact ImpactOverride

	for i := range rules.Rules {
		rule := &rules.Rules[i]
		if !rule.MatchesPart(part.Name) {
			continue
		}
		if !rule.Filter.IsEligible(target, projectile, e.identity) {
			continue
		}

		factor := 1.0
		if rule.SuccessHPFactor != 0 {
			factor = HealthFactor(target, rule.SuccessHPFactor, damage, rule.SuccessHPFactorCap)
		}
		if !e.rollPercent(scaledChance(rule.SuccessChance, factor)) {
			continue
		}

		matched = true
		cumulativeMult *= rule.DamageMult
		damage *= rule.DamageMult
		if rule.Difficulty > maxDifficulty {
			maxDifficulty = rule.Difficulty
		}

		if rule.Deflect && projectile.SticksOnImpact() {
			e.host.DeflectProjectile(projectile)
			result.Deflected = true
		}

		if rule.ImpactOverrideID != "" {
			if impact, found := e.host.LookupImpact(rule.ImpactOverrideID); found {
				stagedImpact = impact
			}
		}

		if shooter != nil {
			if settings.AmplifyEffects {
				amplifyFreshEffects(target, shooter, rule.DamageMult)
			}
			if (shooterIsPlayer || targetIsPlayer) && rule.HitSound != "" {
				if shooterIsPlayer || settings.PlayerHitSound {
					e.host.PlaySound(rule.HitSound)
				}
			}
			e.notify(rule, settings, shooter, shooterIsPlayer, targetIsPlayer)
		}

		e.castEffects(rule, settings, shooter, target, damage, shooterIsPlayer, targetIsPlayer)

		if !rule.Continue {
			break
		}
	}

	result.Matched = matched
	result.DamageMult = cumulativeMult
	result.MaxDifficulty = maxDifficulty

	if matched && shooter != nil {
		e.queue.Push(PendingOverride{
			AggressorID: shooter.ID(),
			TargetID:    target.ID(),
			Location:    hit.Impact,
			DamageMult:  cumulativeMult,
			Impact:      stagedImpact,
			ExpiresAt:   e.clock().Add(e.ttl),
		})
		result.OverrideQueued = true
	}

	if shooterIsPlayer {
		result.RewardMult = e.grantReward(ctx, hit, settings, shooter, target, matched, maxDifficulty)
	}

	e.flushFloating(hit, settings, shooterIsPlayer, targetIsPlayer, firstPerson)

	if settings.DebugNotification {
		if shooterIsPlayer {
			e.host.ShowScreenText(fmt.Sprintf("Arrow hits %s", part.Name))
		}
	}

	if matched {
		locational.Hit(ctx, e.pub, hit.Tick, actorRef(shooter), actorRef(target), locational.HitPayload{
			Part:       part.Name,
			DamageMult: cumulativeMult,
			Deflected:  result.Deflected,
			Queued:     result.OverrideQueued,
		})
	} else if settings.DebugNotification {
		locational.Resolved(ctx, e.pub, hit.Tick, actorRef(shooter), actorRef(target), part.Name)
	}

	return result
}

// grantReward computes the experience multiplier for a player shooter and
// grants the scaled skill experience when it exceeds the baseline.
func (e *Engine) grantReward(ctx context.Context, hit HitEvent, settings GlobalSettings, shooter, target Actor, matched bool, maxDifficulty float64) float64 {
	reward := 1.0
	if settings.LocationRewardScaling && matched && maxDifficulty > 1 {
		reward += maxDifficulty - 1
	}
	if settings.DifficultyRewardScaling {
		reward *= ShotDifficulty(hit.Projectile, target, settings.FlightTimeFactor, settings.DistanceFactor, settings.MovementFactor)
	}
	if settings.RewardCap > 0 && reward > settings.RewardCap {
		reward = settings.RewardCap
	}
	if reward <= 1 {
		return reward
	}

	experience := (reward - 1) * e.host.WeaponBaseDamage(shooter)
	e.host.GrantExperience(shooter, experience)
	if settings.RewardNotification {
		e.host.ShowScreenText(fmt.Sprintf("Shot reward x%.2f", reward))
	}
	locational.Reward(ctx, e.pub, hit.Tick, actorRef(shooter), locational.RewardPayload{
		Multiplier: reward,
		Experience: experience,
	})
	return reward
}

func (e *Engine) flushFloating(hit HitEvent, settings GlobalSettings, shooterIsPlayer, targetIsPlayer, firstPerson bool) {
	// First-person hits on oneself keep the text at the default screen
	// position instead of projecting the impact point.
	var anchor *Vec3
	if !firstPerson {
		location := hit.Impact
		anchor = &location
	}
	opacity := 50.0
	if shooterIsPlayer || targetIsPlayer {
		opacity = 100.0
	}
	e.floats.Flush(hit.Target.ID(), anchor, settings.FloatingOffsetX, settings.FloatingOffsetY, opacity)
}

// notify stages the rule's floating text and falls back to screen text when
// floating delivery is unavailable or the configured mode requests it.
func (e *Engine) notify(rule *LocationRule, settings GlobalSettings, shooter Actor, shooterIsPlayer, targetIsPlayer bool) {
	if !shooterIsPlayer && !targetIsPlayer && !settings.NPCFloatingNotification {
		return
	}
	message := rule.Message
	floating := rule.MessageFloating
	if message == "" && floating == "" {
		return
	}
	if floating == "" {
		floating = message
	}

	showScreen := settings.NotificationMode.allowsScreen()

	if settings.NotificationMode.allowsFloating() {
		wantFloating := shooterIsPlayer ||
			(targetIsPlayer && settings.PlayerHitNotification) ||
			(!targetIsPlayer && !shooterIsPlayer && settings.NPCFloatingNotification)
		if wantFloating && !e.floats.Stage(floating, e.floatingColor(rule, targetIsPlayer), rule.FloatingSize) {
			showScreen = true
		}
	}

	// Screen text is reserved for hits involving the player.
	if showScreen && message != "" {
		if targetIsPlayer && settings.PlayerHitNotification {
			e.host.ShowScreenText(fmt.Sprintf("%s by %s", message, shooter.Name()))
		} else if shooterIsPlayer {
			e.host.ShowScreenText(message)
		}
	}
}

// castEffects rolls each configured (effect, chance) pair independently and
// casts the successes. Peak-value-only bundles cast from the target, sparing
// a known stacking defect when the same source casts repeatedly; so do hits
// with no shooter.
func (e *Engine) castEffects(rule *LocationRule, settings GlobalSettings, shooter, target Actor, damage float64, shooterIsPlayer, targetIsPlayer bool) {
	for _, effect := range rule.Effects {
		if effect.EffectID == "" {
			continue
		}
		factor := HealthFactor(target, settings.EffectHPFactor, damage, settings.EffectChanceCap)
		if !e.rollPercent(scaledChance(effect.Chance, factor)) {
			continue
		}
		def, found := e.host.LookupEffect(effect.EffectID)
		if !found {
			continue
		}
		source := shooter
		if source == nil || def.PeakValueOnly() {
			source = target
		}
		e.host.CastEffect(def, source, target)

		if settings.HitEffectNotification && (shooterIsPlayer || targetIsPlayer || settings.NPCFloatingNotification) {
			e.floats.Stage(def.Name(), e.floatingColor(rule, targetIsPlayer), rule.FloatingSize)
		}
	}
}

func (e *Engine) floatingColor(rule *LocationRule, targetIsPlayer bool) uint32 {
	if targetIsPlayer {
		return rule.FloatingColorSelf
	}
	return rule.FloatingColorEnemy
}

// amplifyFreshEffects scales status effects the aggressor just created on the
// target: magnitude when the definition says power affects it, duration
// otherwise.
func amplifyFreshEffects(target, aggressor Actor, mult float64) {
	aggressorID := aggressor.ID()
	for _, effect := range target.ActiveEffects() {
		if effect == nil || effect.ElapsedSeconds() != 0 {
			continue
		}
		if effect.CasterID() != aggressorID {
			continue
		}
		if effect.PowerAffectsMagnitude() && effect.Magnitude() != 0 {
			effect.SetMagnitude(effect.Magnitude() * mult)
		} else {
			effect.SetDuration(effect.Duration() * mult)
		}
	}
}

// rollPercent mirrors the original integer percentage gate: a uniform roll in
// [0,100) succeeds when it does not exceed the chance.
func (e *Engine) rollPercent(chance int) bool {
	var roll int
	if e.rng != nil {
		roll = e.rng.Intn(100)
	} else {
		roll = rand.Intn(100)
	}
	return roll <= chance
}

func actorRef(actor Actor) logging.EntityRef {
	if actor == nil {
		return logging.EntityRef{Kind: logging.EntityKindWorld}
	}
	kind := logging.EntityKindNPC
	if actor.IsPlayer() {
		kind = logging.EntityKindPlayer
	}
	return logging.EntityRef{ID: actor.ID(), Kind: kind}
}
