// Package shader compiles the wireframe GLSL program and caches its locations.
package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/internal/logger"
	"github.com/Faultbox/twistview/pkg/math"
)

// Variable names the program looks up after linking.
const (
	AttribVertex = "vertex"
	UniformMVP   = "ModelViewProjectionMatrix"
	UniformColor = "color"
)

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Stage gpu.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("error in %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link error in program: %s", e.Log)
}

// Program is a linked shader program with its resolved locations.
// A location of -1 means the variable was not found or is inactive.
type Program struct {
	Name string
	ID   uint32

	AttribVertex int32
	LocColor     int32
	LocMVP       int32

	dev gpu.Device
}

// CompileProgram compiles vertex and fragment shaders, links them into a
// program and resolves the attribute and uniform locations.
// On failure no program object is left behind.
func CompileProgram(dev gpu.Device, name, vertexSrc, fragmentSrc string) (*Program, error) {
	vertShader, err := compileShader(dev, gpu.VertexShader, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vertShader)

	fragShader, err := compileShader(dev, gpu.FragmentShader, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fragShader)

	program := dev.CreateProgram()
	dev.AttachShader(program, vertShader)
	dev.AttachShader(program, fragShader)
	dev.LinkProgram(program)

	if !dev.ProgramLinked(program) {
		log := diagnostic(dev.ProgramInfoLog(program))
		dev.DeleteProgram(program)
		return nil, &LinkError{Log: log}
	}

	p := &Program{
		Name:         name,
		ID:           program,
		AttribVertex: -1,
		LocColor:     -1,
		LocMVP:       -1,
		dev:          dev,
	}
	p.resolveLocations()

	logger.Debug("shader program created",
		zap.String("name", name),
		zap.Uint32("program", program),
		zap.Int32("vertex", p.AttribVertex),
		zap.Int32("mvp", p.LocMVP),
		zap.Int32("color", p.LocColor),
	)
	return p, nil
}

// compileShader compiles a single shader of the given stage.
func compileShader(dev gpu.Device, stage gpu.ShaderStage, source string) (uint32, error) {
	shader := dev.CreateShader(stage)
	dev.ShaderSource(shader, source)
	dev.CompileShader(shader)

	if !dev.ShaderCompiled(shader) {
		log := diagnostic(dev.ShaderInfoLog(shader))
		dev.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// diagnostic keeps error messages non-empty when a driver returns no log.
func diagnostic(log string) string {
	if log == "" {
		return "no diagnostic available"
	}
	return log
}

func (p *Program) resolveLocations() {
	p.AttribVertex = p.dev.AttribLocation(p.ID, AttribVertex)
	p.LocMVP = p.dev.UniformLocation(p.ID, UniformMVP)
	p.LocColor = p.dev.UniformLocation(p.ID, UniformColor)

	if p.AttribVertex < 0 || p.LocMVP < 0 || p.LocColor < 0 {
		logger.Warn("shader variable not active",
			zap.String("program", p.Name),
			zap.Int32(AttribVertex, p.AttribVertex),
			zap.Int32(UniformMVP, p.LocMVP),
			zap.Int32(UniformColor, p.LocColor),
		)
	}
}

// Use makes this the active program for uniform uploads and draws.
func (p *Program) Use() {
	p.dev.UseProgram(p.ID)
}

// SetModelViewProjection uploads the combined transform. Use must be called first.
func (p *Program) SetModelViewProjection(m math.Mat4) {
	p.dev.UniformMatrix4(p.LocMVP, m)
}

// SetColor uploads the flat line color. Use must be called first.
func (p *Program) SetColor(c [4]float32) {
	p.dev.Uniform4(p.LocColor, c)
}
