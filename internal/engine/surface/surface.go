// Package surface tessellates the twisted parametric surface into a
// line-list mesh.
//
// The surface is
//
//	x = (a + b·sin(n·u))·cos(u) − sin(u)·v
//	y = (a + b·sin(n·u))·sin(u) + cos(u)·v
//	z = b·cos(n·u)
//
// sampled on a regular (u, v) grid over [0, 2π] in both parameters.
package surface

import (
	"errors"
	"fmt"
	"math"
)

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = 1 << 16

var (
	ErrInvalidStep     = errors.New("surface step must be positive")
	ErrTooManyVertices = errors.New("surface needs more vertices than 16-bit indices can address")
)

// Params holds the shape constants and the angular sampling steps.
type Params struct {
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	N     float64 `yaml:"n"`
	StepU float64 `yaml:"step_u"` // radians
	StepV float64 `yaml:"step_v"` // radians
}

// DefaultParams returns a=1, b=2, n=2 sampled every 0.12 radians.
func DefaultParams() Params {
	return Params{
		A:     1,
		B:     2,
		N:     2,
		StepU: 0.12,
		StepV: 0.12,
	}
}

// Steps returns the number of grid intervals along u and v.
func (p Params) Steps() (uSteps, vSteps int) {
	return int(math.Round(2 * math.Pi / p.StepU)), int(math.Round(2 * math.Pi / p.StepV))
}

// Validate checks the steps and that the grid fits 16-bit indices.
func (p Params) Validate() error {
	if !(p.StepU > 0) || !(p.StepV > 0) || math.IsInf(p.StepU, 0) || math.IsInf(p.StepV, 0) {
		return fmt.Errorf("%w: step_u=%g step_v=%g", ErrInvalidStep, p.StepU, p.StepV)
	}
	// Bound each axis in float64 first so the int product cannot overflow.
	for _, step := range []float64{p.StepU, p.StepV} {
		if intervals := math.Round(2 * math.Pi / step); intervals > MaxVertices-1 {
			return fmt.Errorf("%w: %g intervals per axis", ErrTooManyVertices, intervals)
		}
	}
	uSteps, vSteps := p.Steps()
	if n := (uSteps + 1) * (vSteps + 1); n > MaxVertices {
		return fmt.Errorf("%w: %d vertices", ErrTooManyVertices, n)
	}
	return nil
}

// Point evaluates the surface at (u, v).
func (p Params) Point(u, v float64) (x, y, z float64) {
	r := p.A + p.B*math.Sin(p.N*u)
	x = r*math.Cos(u) - math.Sin(u)*v
	y = r*math.Sin(u) + math.Cos(u)*v
	z = p.B * math.Cos(p.N*u)
	return x, y, z
}

// Mesh is a tessellated surface. Vertices holds x, y, z triples in
// row-major (u, then v) order.
//
// UIndices joins neighbouring v samples inside one u row and VIndices joins
// neighbouring u rows at one v sample. Both are line lists.
type Mesh struct {
	Vertices []float32
	UIndices []uint16
	VIndices []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// Bounds returns the axis-aligned bounding box as min and max corners.
func (m *Mesh) Bounds() (lo, hi [3]float32) {
	if len(m.Vertices) < 3 {
		return lo, hi
	}
	copy(lo[:], m.Vertices[:3])
	copy(hi[:], m.Vertices[:3])
	for i := 3; i+2 < len(m.Vertices); i += 3 {
		for k := 0; k < 3; k++ {
			v := m.Vertices[i+k]
			if v < lo[k] {
				lo[k] = v
			}
			if v > hi[k] {
				hi[k] = v
			}
		}
	}
	return lo, hi
}

// Generate tessellates the surface with DefaultParams.
func Generate() *Mesh {
	m, err := GenerateWith(DefaultParams())
	if err != nil {
		// Default parameters always validate.
		panic(err)
	}
	return m
}

// GenerateWith tessellates the surface with p. The grid is not stitched:
// the last row and column do not connect back to the first.
func GenerateWith(p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	uSteps, vSteps := p.Steps()
	row := vSteps + 1

	m := &Mesh{
		Vertices: make([]float32, 0, 3*(uSteps+1)*row),
		UIndices: make([]uint16, 0, 2*(uSteps+1)*vSteps),
		VIndices: make([]uint16, 0, 2*uSteps*row),
	}

	for i := 0; i <= uSteps; i++ {
		u := float64(i) * p.StepU
		for j := 0; j <= vSteps; j++ {
			v := float64(j) * p.StepV
			x, y, z := p.Point(u, v)
			m.Vertices = append(m.Vertices, float32(x), float32(y), float32(z))

			idx := i*row + j
			if j > 0 {
				m.UIndices = append(m.UIndices, uint16(idx-1), uint16(idx))
			}
			if i > 0 {
				m.VIndices = append(m.VIndices, uint16(idx-row), uint16(idx))
			}
		}
	}

	return m, nil
}
