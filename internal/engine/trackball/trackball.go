// Package trackball turns pointer drags into a view rotation.
package trackball

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/twistview/pkg/math"
)

// minAngle is the smallest rotation a drag step must produce to count as a change.
const minAngle = 1e-5

// Rotator is a virtual trackball. Pointer positions are projected onto a
// sphere centered in the viewport (a hyperbolic sheet outside it) and the
// rotation between successive points accumulates into an orientation.
type Rotator struct {
	width, height int

	rotation math.Quat
	initial  math.Quat

	dragging bool
	last     math.Vec3

	// onChange is called synchronously whenever the orientation changes.
	onChange func()
}

// New creates a rotator for a viewport of the given size. onChange may be nil.
func New(width, height int, onChange func(), initial math.Quat) *Rotator {
	initial = initial.Normalize()
	return &Rotator{
		width:    width,
		height:   height,
		rotation: initial,
		initial:  initial,
		onChange: onChange,
	}
}

// Resize updates the viewport used to map pointer positions.
func (r *Rotator) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Press starts a drag at pixel (x, y).
func (r *Rotator) Press(x, y int) {
	r.dragging = true
	r.last = r.project(x, y)
}

// Drag continues a drag at pixel (x, y). It reports whether the view changed.
func (r *Rotator) Drag(x, y int) bool {
	if !r.dragging {
		return false
	}

	p := r.project(x, y)
	axis := r.last.Cross(p)
	angle := math32.Acos(clamp(r.last.Dot(p), -1, 1))
	if angle < minAngle || axis.Length() == 0 {
		return false
	}
	r.last = p

	delta := math.QuatFromAxisAngle(axis.Normalize(), angle)
	r.rotation = delta.Mul(r.rotation).Normalize()
	r.changed()
	return true
}

// Release ends the current drag.
func (r *Rotator) Release() {
	r.dragging = false
}

// Dragging reports whether a drag is in progress.
func (r *Rotator) Dragging() bool {
	return r.dragging
}

// Rotation returns the current orientation.
func (r *Rotator) Rotation() math.Quat {
	return r.rotation
}

// SetRotation replaces the orientation and notifies the listener.
func (r *Rotator) SetRotation(q math.Quat) {
	r.rotation = q.Normalize()
	r.changed()
}

// Reset restores the initial orientation.
func (r *Rotator) Reset() {
	r.SetRotation(r.initial)
}

// ViewMatrix returns the rotation matrix of the current orientation.
func (r *Rotator) ViewMatrix() math.Mat4 {
	return r.rotation.ToMat4()
}

func (r *Rotator) changed() {
	if r.onChange != nil {
		r.onChange()
	}
}

// project maps a pixel to a unit vector. y grows downwards in window
// coordinates and upwards on the sphere.
func (r *Rotator) project(x, y int) math.Vec3 {
	size := float32(min(r.width, r.height))
	if size <= 0 {
		size = 1
	}
	px := (2*float32(x) - float32(r.width)) / size
	py := (float32(r.height) - 2*float32(y)) / size

	var pz float32
	if d2 := px*px + py*py; d2 <= 0.5 {
		pz = math32.Sqrt(1 - d2)
	} else {
		pz = 0.5 / math32.Sqrt(d2)
	}
	return math.Vec3{X: px, Y: py, Z: pz}.Normalize()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
