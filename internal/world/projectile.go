package world

import "nock-and-loose/server/internal/combat"

// AmmoForm is the ammunition nocked into a shot.
type AmmoForm struct {
	Name     string
	Traits   TraitSet
	Class    combat.AmmoCategory
}

func (a *AmmoForm) HasTrait(keyword string) bool  { return a.Traits.HasTrait(keyword) }
func (a *AmmoForm) Category() combat.AmmoCategory { return a.Class }

// ProjectileState is one arrow in flight between the archer and its target.
type ProjectileState struct {
	id      string
	shooter string
	target  string

	weapon *Item
	ammo   *AmmoForm

	position   combat.Vec3
	velocity   combat.Vec3
	flightTime float64
	travelled  float64

	sticks bool
}

func (p *ProjectileState) Weapon() combat.TraitSource {
	if p.weapon == nil {
		return nil
	}
	return p.weapon
}

func (p *ProjectileState) Ammo() combat.AmmoSource {
	if p.ammo == nil {
		return nil
	}
	return p.ammo
}

func (p *ProjectileState) FlightTime() float64        { return p.flightTime }
func (p *ProjectileState) DistanceTravelled() float64 { return p.travelled }
func (p *ProjectileState) Velocity() combat.Vec3      { return p.velocity }
func (p *ProjectileState) Hitscan() bool              { return false }
func (p *ProjectileState) ArrowClass() bool           { return true }
func (p *ProjectileState) SticksOnImpact() bool       { return p.sticks }

// advance integrates the projectile forward by dt seconds.
func (p *ProjectileState) advance(dt float64) {
	step := p.velocity.Scale(dt)
	p.position = p.position.Add(step)
	p.travelled += step.Length()
	p.flightTime += dt
}
