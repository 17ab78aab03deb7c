package locational

import (
	"context"

	"nock-and-loose/server/logging"
)

const (
	// EventHit is emitted when a location rule fires for a projectile hit.
	EventHit logging.EventType = "locational.hit"
	// EventResolved is emitted for resolved hits that matched no rule; it is
	// only published when debug notification is enabled.
	EventResolved logging.EventType = "locational.resolved"
	// EventOverrideConsumed is emitted when the apply-damage dispatch finds
	// a pending override for a hit.
	EventOverrideConsumed logging.EventType = "locational.override_consumed"
	// EventReward is emitted when a shot grants bonus experience.
	EventReward logging.EventType = "locational.reward"
)

// HitPayload captures the consequences of a matched rule chain.
type HitPayload struct {
	Part       string  `json:"part"`
	DamageMult float64 `json:"damageMult"`
	Deflected  bool    `json:"deflected,omitempty"`
	Queued     bool    `json:"queued,omitempty"`
}

// OverridePayload captures a consumed pending override.
type OverridePayload struct {
	Part       string  `json:"part,omitempty"`
	DamageMult float64 `json:"damageMult"`
	Impact     string  `json:"impact,omitempty"`
}

// RewardPayload captures a granted shot reward.
type RewardPayload struct {
	Multiplier float64 `json:"multiplier"`
	Experience float64 `json:"experience"`
}

// Hit publishes a matched locational hit.
func Hit(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload HitPayload) {
	publish(ctx, pub, EventHit, logging.SeverityInfo, tick, actor, target, payload)
}

// Resolved publishes a resolved-but-unmatched hit at debug severity.
func Resolved(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, part string) {
	publish(ctx, pub, EventResolved, logging.SeverityDebug, tick, actor, target, HitPayload{Part: part, DamageMult: 1})
}

// OverrideConsumed publishes the apply-side consumption of a pending
// override.
func OverrideConsumed(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload OverridePayload) {
	publish(ctx, pub, EventOverrideConsumed, logging.SeverityInfo, tick, actor, target, payload)
}

// Reward publishes a granted experience reward.
func Reward(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload RewardPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventReward,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, typ logging.EventType, sev logging.Severity, tick uint64, actor, target logging.EntityRef, payload any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     typ,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: sev,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
