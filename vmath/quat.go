package vmath

import "math"

// Quat is a unit quaternion representing an orientation. The convention is
// world = q.Rotate(local): rotating a vehicle-local vector into world frame.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat returns the identity orientation.
func IdentityQuat() Quat { return Quat{W: 1} }

// QuatFromAxisAngle builds a rotation of angle radians about the given axis.
// The axis must be unit length.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// Mul returns the Hamilton product q*o. Right-multiplying by a rotation about
// a local axis applies that rotation in the vehicle frame.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conj returns the conjugate, which for a unit quaternion is the inverse.
func (q Quat) Conj() Quat { return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z} }

// Len returns the quaternion norm.
func (q Quat) Len() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized rescales to unit length. Degenerate input falls back to identity.
func (q Quat) Normalized() Quat {
	l := q.Len()
	if l < 1e-12 {
		return IdentityQuat()
	}
	inv := 1 / l
	return Quat{W: q.W * inv, X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv}
}

// Rotate applies the rotation to v (local -> world).
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*W*(u x v) + 2*(u x (u x v)), with u the vector part.
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}
