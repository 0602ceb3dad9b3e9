package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored column by column, so element (row, col)
// lives at index col*4+row and the translation occupies indices 12..14.
type Mat4 [16]float32

// at returns element (row, col).
func (m *Mat4) at(row, col int) float32 {
	return m[col*4+row]
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i*5] = 1
	}
	return m
}

// Perspective returns an OpenGL projection for a vertical field of view
// fovY (radians). Depth in [-near, -far] maps to [-1, 1].
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	rangeInv := 1 / (near - far)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (near + far) * rangeInv
	m[11] = -1
	m[14] = 2 * near * far * rangeInv
	return m
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// RotateAxis returns a rotation of angle radians around axis. The axis
// does not need to be unit length; a zero axis yields the identity.
func RotateAxis(axis Vec3, angle float32) Mat4 {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return Identity()
	}

	s, c := math32.Sincos(angle)
	k := 1 - c
	x, y, z := n.X, n.Y, n.Z

	return Mat4{
		x*x*k + c, x*y*k + z*s, x*z*k - y*s, 0,
		x*y*k - z*s, y*y*k + c, y*z*k + x*s, 0,
		x*z*k + y*s, y*z*k - x*s, z*z*k + c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m·o, the transform that applies o first and then m.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.at(row, k) * o.at(k, col)
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// MulAll multiplies left to right, so the last matrix is applied first.
func MulAll(first Mat4, rest ...Mat4) Mat4 {
	r := first
	for _, m := range rest {
		r = r.Mul(m)
	}
	return r
}

// TransformPoint applies m to the point p with w = 1 and divides by the
// resulting w when it is neither 0 nor 1.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m.at(row, 0)*p[0] + m.at(row, 1)*p[1] + m.at(row, 2)*p[2] + m.at(row, 3)
	}
	if w := out[3]; w != 0 && w != 1 {
		return [3]float32{out[0] / w, out[1] / w, out[2] / w}
	}
	return [3]float32{out[0], out[1], out[2]}
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[row*4+col] = m.at(row, col)
		}
	}
	return r
}

// Ptr returns a pointer to the first element for glUniformMatrix4fv.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
