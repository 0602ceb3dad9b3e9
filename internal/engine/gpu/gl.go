package gpu

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/twistview/internal/logger"
	"github.com/Faultbox/twistview/pkg/math"
)

var _ Device = (*GLDevice)(nil)

// GLDevice implements Device on top of an OpenGL 4.1 core context.
type GLDevice struct {
	vao uint32
}

// NewGL loads the OpenGL function pointers for the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func NewGL() (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	// Core profile rejects attribute setup without a bound VAO.
	d := &GLDevice{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	return d, nil
}

func (d *GLDevice) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *GLDevice) BindBuffer(target BufferTarget, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (d *GLDevice) BufferFloat32(target BufferTarget, data []float32, usage Usage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(uint32(target), len(data)*4, ptr, uint32(usage))
}

func (d *GLDevice) BufferUint16(target BufferTarget, data []uint16, usage Usage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(uint32(target), len(data)*2, ptr, uint32(usage))
}

func (d *GLDevice) CreateShader(stage ShaderStage) uint32 {
	return gl.CreateShader(uint32(stage))
}

func (d *GLDevice) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (d *GLDevice) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *GLDevice) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDevice) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (d *GLDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GLDevice) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *GLDevice) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *GLDevice) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *GLDevice) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *GLDevice) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

func (d *GLDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) UniformMatrix4(location int32, m math.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, m.Ptr())
}

func (d *GLDevice) Uniform4(location int32, v [4]float32) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (d *GLDevice) VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, normalized, stride, uintptr(offset))
}

func (d *GLDevice) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *GLDevice) DrawElements(mode Primitive, count int32, indexType IndexType, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(indexType), uintptr(offset))
}

func (d *GLDevice) Enable(c Capability) {
	gl.Enable(uint32(c))
}

func (d *GLDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *GLDevice) Clear(mask ClearMask) {
	gl.Clear(uint32(mask))
}

func (d *GLDevice) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// ReadPixels reads RGBA bytes from the back buffer, bottom row first.
func (d *GLDevice) ReadPixels(x, y, width, height int32) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels
}
