package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/internal/engine/model"
	"github.com/Faultbox/twistview/internal/engine/renderer"
	"github.com/Faultbox/twistview/internal/engine/shader"
	"github.com/Faultbox/twistview/internal/engine/shader/shaders"
	"github.com/Faultbox/twistview/internal/engine/surface"
	"github.com/Faultbox/twistview/internal/engine/trackball"
	"github.com/Faultbox/twistview/internal/logger"
	"github.com/Faultbox/twistview/pkg/math"
)

// Pipeline is the render state built once on a live device: the program,
// the uploaded surface, the trackball and the frame renderer.
type Pipeline struct {
	Program  *shader.Program
	Model    *model.Model
	Rotator  *trackball.Rotator
	Renderer *renderer.Renderer

	present func()
}

// BuildPipeline compiles the wireframe program, uploads the surface and
// wires the trackball to redraw through present. width and height are the
// window size in pointer coordinates.
func BuildPipeline(dev gpu.Device, params surface.Params, width, height int, present func()) (*Pipeline, error) {
	dev.Enable(gpu.DepthTest)

	program, err := shader.CompileProgram(dev, "Basic", shaders.WireframeVertexShader, shaders.WireframeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("shader program: %w", err)
	}
	program.Use()

	mesh, err := surface.GenerateWith(params)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}

	surfaceModel := model.New(dev, "Surface")
	if err := surfaceModel.Upload(mesh); err != nil {
		return nil, err
	}

	lo, hi := mesh.Bounds()
	logger.Info("surface ready",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int32("uIndices", surfaceModel.UCount()),
		zap.Int32("vIndices", surfaceModel.VCount()),
		zap.Float32s("min", lo[:]),
		zap.Float32s("max", hi[:]),
	)

	p := &Pipeline{
		Program: program,
		Model:   surfaceModel,
		present: present,
	}
	p.Rotator = trackball.New(width, height, p.Redraw, math.QuatIdentity())
	p.Renderer = renderer.New(dev, program, surfaceModel, p.Rotator)
	return p, nil
}

// Redraw draws and presents one frame.
func (p *Pipeline) Redraw() {
	p.Renderer.Draw()
	if p.present != nil {
		p.present()
	}
}
