package combat

import "math"

// referenceHalfHeight is the collision half-height of an average humanoid;
// shorter targets score easier, taller targets harder.
const referenceHalfHeight = 65.0

// freeFlightSeconds of flight (and the distance covered in them) earn no
// bonus, so point-blank shots stay at the baseline.
const freeFlightSeconds = 0.1

// ShotDifficulty scores how hard a landed shot was from instantaneous
// kinematics, returned as a multiplier with baseline 1. Flight time and
// travel distance contribute quadratically; lateral target motion contributes
// exponentially with remaining flight time. Factors tune each component, and
// a flying target doubles the accumulated bonus.
func ShotDifficulty(projectile Projectile, target Actor, timeFactor, distFactor, moveFactor float64) float64 {
	if projectile == nil || target == nil {
		return 1
	}

	flightTime := projectile.FlightTime()
	timeBonus := math.Max(flightTime-freeFlightSeconds, 0)
	timeDifficulty := (math.Pow(1+timeBonus, 2) - 1) / 2 * timeFactor

	attackVector, projectileSpeed := projectile.Velocity().Normalized()
	targetVector, targetSpeed := target.Velocity().Normalized()

	extents := target.BodyExtents()
	sizeFactor := 1.0
	if extents.Z != 0 {
		sizeFactor = referenceHalfHeight / extents.Z
	}

	distBonus := math.Max(projectile.DistanceTravelled()-projectileSpeed*freeFlightSeconds, 0)
	distDifficulty := (math.Pow(1+distBonus/6000.0, 2) - 1) / 2 * distFactor

	// A target closing or fleeing is easy; one crossing the shot line is
	// hard, and harder still the longer the arrow flew.
	movementDifficulty := 0.0
	if targetSpeed != 0 {
		crossFactor := targetVector.Cross(attackVector).Length()
		movementFactor := 0.0
		if extents.Y != 0 {
			bodyLengthSpeed := targetSpeed / extents.Y
			movementFactor = bodyLengthSpeed / 2.5 * crossFactor
		}
		movementDifficulty = math.Pow(2, 1+flightTime*2) - 2
		movementDifficulty *= movementFactor * crossFactor * moveFactor
	}

	difficulty := (timeDifficulty + distDifficulty + movementDifficulty) * sizeFactor
	if target.IsFlying() {
		difficulty *= 2
	}

	return difficulty + 1
}
