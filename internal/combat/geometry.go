package combat

import "math"

// Vec3 represents a world-space point or direction used by hit resolution and
// shot scoring.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// LengthSquared returns the squared magnitude of v.
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Scale returns v multiplied by factor.
func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Cross returns the cross product v × other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Normalized returns a unit-length copy of v alongside its original length.
// A zero vector normalizes to zero with length 0.
func (v Vec3) Normalized() (Vec3, float64) {
	length := v.Length()
	if length == 0 {
		return Vec3{}, 0
	}
	return Vec3{X: v.X / length, Y: v.Y / length, Z: v.Z / length}, length
}

// DistanceSquared returns the squared distance between two points.
func DistanceSquared(a, b Vec3) float64 {
	return a.Sub(b).LengthSquared()
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
