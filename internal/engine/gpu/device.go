// Package gpu defines the slice of the OpenGL API the renderer depends on.
//
// Rendering code talks to a Device instead of calling go-gl directly, so the
// mesh, shader and frame logic can run against gputest.Device in tests and
// against GLDevice in the application.
package gpu

import "github.com/Faultbox/twistview/pkg/math"

// BufferTarget selects the binding point for a buffer object.
type BufferTarget uint32

// Buffer binding points (values match the GL enums).
const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

// Usage is the data store usage hint passed with buffer uploads.
type Usage uint32

// Buffer usage hints.
const (
	StreamDraw  Usage = 0x88E0
	StaticDraw  Usage = 0x88E4
	DynamicDraw Usage = 0x88E8
)

// Primitive is the primitive mode of a draw call.
type Primitive uint32

// Primitive modes.
const (
	Lines     Primitive = 0x0001
	Triangles Primitive = 0x0004
)

// IndexType is the element type of an index buffer.
type IndexType uint32

// Index element types.
const (
	UnsignedShort IndexType = 0x1403
	UnsignedInt   IndexType = 0x1405
)

// Capability is a server-side GL capability toggled with Enable.
type Capability uint32

// Capabilities.
const (
	DepthTest Capability = 0x0B71
)

// ClearMask selects the buffers cleared by Clear.
type ClearMask uint32

// Clear bits.
const (
	DepthBufferBit ClearMask = 0x00000100
	ColorBufferBit ClearMask = 0x00004000
)

// ShaderStage identifies a shader type.
type ShaderStage uint32

// Shader stages.
const (
	FragmentShader ShaderStage = 0x8B30
	VertexShader   ShaderStage = 0x8B31
)

// String returns the lowercase stage name used in diagnostics.
func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the rendering context. All methods must be called from the
// thread that owns the context.
type Device interface {
	// Buffers
	CreateBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferFloat32(target BufferTarget, data []float32, usage Usage)
	BufferUint16(target BufferTarget, data []uint16, usage Usage)

	// Shaders and programs
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	// Uniforms apply to the program in use.
	UniformMatrix4(location int32, m math.Mat4)
	Uniform4(location int32, v [4]float32)

	// Vertex input and drawing
	VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DrawElements(mode Primitive, count int32, indexType IndexType, offset int)

	// Framebuffer state
	Enable(c Capability)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)
	ReadPixels(x, y, width, height int32) []byte
}
