// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "github.com/chewxy/math32"

// Vec3 is a 3D vector or position.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// One is the unit scale.
var One = Vec3{1, 1, 1}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// MulVec returns the component-wise product of two vectors.
func (v Vec3) MulVec(w Vec3) Vec3 {
	return Vec3{X: v.X * w.X, Y: v.Y * w.Y, Z: v.Z * w.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the length (magnitude) of the vector.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if v has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(w Vec3, eps float32) bool {
	return math32.Abs(v.X-w.X) <= eps &&
		math32.Abs(v.Y-w.Y) <= eps &&
		math32.Abs(v.Z-w.Z) <= eps
}

// Quat is a unit quaternion describing a rotation.
type Quat struct {
	W, X, Y, Z float32
}

// IdentityQuat is the rotation that does nothing.
var IdentityQuat = Quat{W: 1}

// Euler builds a rotation from roll (X), pitch (Y) and yaw (Z) in radians,
// applied in that order.
func Euler(roll, pitch, yaw float32) Quat {
	sr, cr := math32.Sincos(roll * 0.5)
	sp, cp := math32.Sincos(pitch * 0.5)
	sy, cy := math32.Sincos(yaw * 0.5)
	return Quat{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}

// Euler returns roll, pitch and yaw in radians.
func (q Quat) Euler() (roll, pitch, yaw float32) {
	roll = math32.Atan2(2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y))
	s := 2 * (q.W*q.Y - q.Z*q.X)
	switch {
	case s >= 1:
		pitch = math32.Pi / 2
	case s <= -1:
		pitch = -math32.Pi / 2
	default:
		pitch = math32.Asin(s)
	}
	yaw = math32.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
	return roll, pitch, yaw
}

// Mul returns the composition q*r: r is applied first, then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Inverse returns the inverse rotation of a unit quaternion.
func (q Quat) Inverse() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Pose is a position and orientation.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// NewPose creates a pose from a position and roll, pitch, yaw angles.
func NewPose(x, y, z, roll, pitch, yaw float32) Pose {
	return Pose{Position: V3(x, y, z), Rotation: Euler(roll, pitch, yaw)}
}

// Transform is a full local-to-world transform: scale, then rotation,
// then translation.
type Transform struct {
	Pose
	Scale Vec3
}

// IdentityTransform leaves points unchanged.
var IdentityTransform = Transform{Pose: Pose{Rotation: IdentityQuat}, Scale: One}

// Apply maps a point from local to world space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.Rotate(p.MulVec(t.Scale)).Add(t.Position)
}

// Compose returns the transform of a child with local transform c whose
// parent has world transform t.
func (t Transform) Compose(c Transform) Transform {
	return Transform{
		Pose: Pose{
			Position: t.Apply(c.Position),
			Rotation: t.Rotation.Mul(c.Rotation),
		},
		Scale: t.Scale.MulVec(c.Scale),
	}
}
