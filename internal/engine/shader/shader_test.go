package shader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/internal/engine/gpu/gputest"
	"github.com/Faultbox/twistview/internal/engine/shader/shaders"
	"github.com/Faultbox/twistview/pkg/math"
)

func TestCompileProgramResolvesLocations(t *testing.T) {
	dev := gputest.New()

	p, err := CompileProgram(dev, "Basic", shaders.WireframeVertexShader, shaders.WireframeFragmentShader)
	require.NoError(t, err)

	assert.Equal(t, "Basic", p.Name)
	assert.NotZero(t, p.ID)
	assert.GreaterOrEqual(t, p.AttribVertex, int32(0))
	assert.GreaterOrEqual(t, p.LocMVP, int32(0))
	assert.GreaterOrEqual(t, p.LocColor, int32(0))
	assert.NotEqual(t, p.LocMVP, p.LocColor)

	// Shader objects are released once the program is linked.
	assert.Zero(t, dev.LiveShaders())
	assert.Equal(t, 1, dev.LivePrograms())
}

func TestCompileProgramVertexSyntaxError(t *testing.T) {
	dev := gputest.New()
	broken := "#version 410 core\nin vec3 vertex;\nvoid main() {\n    gl_Position = vec4(vertex, 1.0;\n}\n"

	p, err := CompileProgram(dev, "Broken", broken, shaders.WireframeFragmentShader)
	require.Error(t, err)
	assert.Nil(t, p)

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, gpu.VertexShader, compileErr.Stage)
	assert.NotEmpty(t, compileErr.Log)
	assert.Contains(t, err.Error(), "vertex shader")
	assert.Contains(t, err.Error(), compileErr.Log)

	assert.Zero(t, dev.LiveShaders())
	assert.Zero(t, dev.LivePrograms())
}

func TestCompileProgramFragmentSyntaxError(t *testing.T) {
	dev := gputest.New()

	_, err := CompileProgram(dev, "Broken", shaders.WireframeVertexShader, "#version 410 core\nvoid main() {\n")

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, gpu.FragmentShader, compileErr.Stage)
	assert.Contains(t, compileErr.Log, "unexpected end of file")

	// The vertex shader compiled before the failure is released too.
	assert.Zero(t, dev.LiveShaders())
}

func TestCompileProgramLinkError(t *testing.T) {
	dev := gputest.New()
	dev.LinkError = "error: ModelViewProjectionMatrix type mismatch"

	p, err := CompileProgram(dev, "Basic", shaders.WireframeVertexShader, shaders.WireframeFragmentShader)
	assert.Nil(t, p)

	var linkErr *LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, dev.LinkError, linkErr.Log)

	var compileErr *CompileError
	assert.False(t, errors.As(err, &compileErr))
	assert.Zero(t, dev.LivePrograms())
}

func TestMissingVariablesResolveToSentinel(t *testing.T) {
	dev := gputest.New()
	vert := "#version 410 core\nin vec3 position;\nvoid main() {\n    gl_Position = vec4(position, 1.0);\n}\n"
	frag := "#version 410 core\nout vec4 FragColor;\nvoid main() {\n    FragColor = vec4(1.0);\n}\n"

	p, err := CompileProgram(dev, "Other", vert, frag)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), p.AttribVertex)
	assert.Equal(t, int32(-1), p.LocMVP)
	assert.Equal(t, int32(-1), p.LocColor)
}

func TestUseAndUniforms(t *testing.T) {
	dev := gputest.New()
	p, err := CompileProgram(dev, "Basic", shaders.WireframeVertexShader, shaders.WireframeFragmentShader)
	require.NoError(t, err)

	p.Use()
	assert.Equal(t, p.ID, dev.Program)

	m := math.Translate(1, 2, 3)
	p.SetModelViewProjection(m)
	p.SetColor([4]float32{0, 1, 0, 1})

	assert.Equal(t, m, dev.Matrices[p.LocMVP])
	assert.Equal(t, [4]float32{0, 1, 0, 1}, dev.Vectors[p.LocColor])
}
