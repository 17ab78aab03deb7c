package world

import (
	"nock-and-loose/server/internal/combat"
)

// impactRecord is the demo's opaque impact-material handle.
type impactRecord struct {
	id string
}

func (r impactRecord) ID() string { return r.id }

// CheckValidTarget applies the demo's hostility rule: any pair of distinct
// living actors is a valid shot.
func (w *World) CheckValidTarget(shooter, target combat.Actor) bool {
	if shooter == nil || target == nil {
		return false
	}
	return shooter.ID() != target.ID() && target.IsAlive()
}

func (w *World) LookupEffect(id string) (combat.EffectDefinition, bool) {
	def, ok := w.effectDefs[id]
	if !ok {
		return nil, false
	}
	return def, true
}

func (w *World) CastEffect(def combat.EffectDefinition, source, target combat.Actor) {
	state, ok := def.(*EffectDefinitionState)
	if !ok {
		return
	}
	receiver, ok := w.actors[target.ID()]
	if !ok {
		return
	}
	casterID := ""
	if source != nil {
		casterID = source.ID()
	}
	receiver.effects = append(receiver.effects, newEffectInstance(state, casterID))
}

// LookupImpact accepts any configured non-empty identifier; the demo has no
// material table to miss against.
func (w *World) LookupImpact(id string) (combat.ImpactOverride, bool) {
	if id == "" {
		return nil, false
	}
	return impactRecord{id: id}, true
}

func (w *World) DeflectProjectile(p combat.Projectile) {
	if state, ok := p.(*ProjectileState); ok {
		state.sticks = false
	}
}

func (w *World) PlaySound(name string) {
	if w.pending != nil {
		w.pending.Sounds = append(w.pending.Sounds, name)
	}
}

func (w *World) ShowScreenText(text string) {
	if w.pending != nil {
		w.pending.Texts = append(w.pending.Texts, text)
	}
}

func (w *World) WeaponBaseDamage(shooter combat.Actor) float64 {
	return w.config.BaseDamage
}

func (w *World) GrantExperience(shooter combat.Actor, amount float64) {
	if actor, ok := w.actors[shooter.ID()]; ok {
		actor.experience += amount
	}
}

// FirstPersonView is always false in the demo; every actor is observed from
// outside.
func (w *World) FirstPersonView(actor combat.Actor) bool { return false }

// Ready implements combat.FloatingPresenter; the feed is always accepting.
func (w *World) Ready() bool { return true }

// Present folds the flushed floating batch into the pending hit report.
func (w *World) Present(batch combat.FloatingBatch) {
	if w.pending == nil {
		return
	}
	for _, entry := range batch.Entries {
		w.pending.Floating = append(w.pending.Floating, entry.Text)
	}
}

// StableID implements combat.IdentityResolver over the demo's editor-id
// table.
func (w *World) StableID(target combat.Actor) (string, bool) {
	id, ok := w.identities[target.ID()]
	return id, ok
}
