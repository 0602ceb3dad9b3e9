package math

import "github.com/chewxy/math32"

// Quat is a rotation quaternion with scalar part W.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the quaternion of no rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns the rotation of angle radians around a unit axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// Normalize returns q at unit length. Degenerate quaternions collapse to
// the identity.
func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < 1e-4 {
		return QuatIdentity()
	}
	inv := 1 / l
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul returns the Hamilton product q·o: rotating by o, then by q.
func (q Quat) Mul(o Quat) Quat {
	v := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	u := Vec3{X: o.X, Y: o.Y, Z: o.Z}
	c := v.Cross(u)
	return Quat{
		X: q.W*u.X + o.W*v.X + c.X,
		Y: q.W*u.Y + o.W*v.Y + c.Y,
		Z: q.W*u.Z + o.W*v.Z + c.Z,
		W: q.W*o.W - v.Dot(u),
	}
}

// ToMat4 returns the rotation matrix of q.
func (q Quat) ToMat4() Mat4 {
	n := q.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W

	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y), 0,
		2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x), 0,
		2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}
