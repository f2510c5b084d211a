// Package vmath provides small value-type vector and quaternion math for the
// simulation core. All types are plain structs passed by value; nothing here
// allocates.
package vmath

import "math"

// Vec3 is a 3D vector in world or vehicle-local coordinates.
// World frame: X east, Y up, Z south (forward is -Z).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference of two vectors.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns the vector scaled by k.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LenSq returns the squared magnitude.
func (v Vec3) LenSq() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Len returns the magnitude.
func (v Vec3) Len() float64 { return math.Sqrt(v.LenSq()) }

// Normalized returns a unit vector in the same direction, or the zero vector
// if the magnitude is negligible.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Reject returns the component of v orthogonal to the unit vector dir.
func (v Vec3) Reject(dir Vec3) Vec3 {
	return v.Sub(dir.Scale(v.Dot(dir)))
}
