// Package renderer draws one frame of the surface wireframe.
package renderer

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/internal/engine/model"
	"github.com/Faultbox/twistview/internal/engine/shader"
	"github.com/Faultbox/twistview/internal/logger"
	"github.com/Faultbox/twistview/pkg/math"
)

// Fixed camera and placement of the surface.
const (
	FieldOfView = float32(gomath.Pi / 8)
	Aspect      = float32(1)
	Near        = float32(12)
	Far         = float32(40)

	FixedAngle    = float32(0.7)
	FixedDistance = float32(30)
)

var (
	// FixedAxis is the surface alignment axis; RotateAxis normalizes it.
	FixedAxis = math.Vec3{X: 0.707, Y: 0.707, Z: 0}

	// LineColor is the flat wireframe color.
	LineColor = [4]float32{0, 1, 0, 1}

	// ClearColor is the opaque black background.
	ClearColor = [4]float32{0, 0, 0, 1}
)

// ViewSource supplies the interactive view rotation.
type ViewSource interface {
	ViewMatrix() math.Mat4
}

// Renderer holds everything a frame needs. It is built once at startup.
type Renderer struct {
	dev     gpu.Device
	program *shader.Program
	model   *model.Model
	view    ViewSource

	frames uint64
}

// New creates a renderer over an initialized program and model.
func New(dev gpu.Device, program *shader.Program, m *model.Model, view ViewSource) *Renderer {
	return &Renderer{
		dev:     dev,
		program: program,
		model:   m,
		view:    view,
	}
}

// ModelViewProjection composes projection · translate · rotate · view.
// The fixed rotation and translation place the surface in front of the
// camera after the interactive view rotation is applied.
func ModelViewProjection(view math.Mat4) math.Mat4 {
	projection := math.Perspective(FieldOfView, Aspect, Near, Far)
	rotate := math.RotateAxis(FixedAxis, FixedAngle)
	translate := math.Translate(0, 0, -FixedDistance)

	return math.MulAll(projection, translate, rotate, view)
}

// Draw renders one frame. It does not present it.
func (r *Renderer) Draw() {
	r.dev.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	r.dev.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	mvp := ModelViewProjection(r.view.ViewMatrix())

	r.program.Use()
	r.program.SetModelViewProjection(mvp)
	r.program.SetColor(LineColor)

	r.model.Draw(r.program.AttribVertex)

	r.frames++
}

// Frames returns the number of frames drawn so far.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Resize fits the largest centered square into the drawable area, so the
// fixed aspect ratio of 1 is never stretched.
func (r *Renderer) Resize(width, height int) {
	side := min(width, height)
	x := (width - side) / 2
	y := (height - side) / 2
	r.dev.Viewport(int32(x), int32(y), int32(side), int32(side))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("viewport", side),
	)
}
