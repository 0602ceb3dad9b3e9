// Package gputest provides an in-memory gpu.Device that records calls.
package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/pkg/math"
)

var _ gpu.Device = (*Device)(nil)

// DrawCall is one recorded DrawElements call.
type DrawCall struct {
	Mode      gpu.Primitive
	Count     int32
	IndexType gpu.IndexType
	Offset    int
	// ElementBuffer and ArrayBuffer are the buffers bound when the call was made.
	ElementBuffer uint32
	ArrayBuffer   uint32
	Program       uint32
}

// AttribPointer is one recorded VertexAttribPointer call.
type AttribPointer struct {
	Index      uint32
	Size       int32
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     uint32
}

// Buffer is the data store of a fake buffer object.
type Buffer struct {
	Float32 []float32
	Uint16  []uint16
	Usage   gpu.Usage
	Uploads int
}

type shaderObject struct {
	stage    gpu.ShaderStage
	source   string
	compiled bool
	log      string
	deleted  bool
}

type programObject struct {
	shaders  []uint32
	linked   bool
	log      string
	deleted  bool
	attribs  map[string]int32
	uniforms map[string]int32
}

// Device is a recording fake for gpu.Device. It validates shader sources
// with a shallow syntax check and resolves locations from the declarations
// found in the linked sources.
type Device struct {
	// LinkError makes every LinkProgram call fail with this log when set.
	LinkError string

	Buffers   map[uint32]*Buffer
	Draws     []DrawCall
	Pointers  []AttribPointer
	Enabled   map[uint32]bool
	Matrices  map[int32]math.Mat4
	Vectors   map[int32][4]float32
	Program   uint32
	Clears    int
	Clear4    [4]float32
	Caps      map[gpu.Capability]bool
	ViewportV [4]int32
	Pixels    []byte

	bound    map[gpu.BufferTarget]uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	nextID   uint32
}

// New returns an empty fake device.
func New() *Device {
	return &Device{
		Buffers:  make(map[uint32]*Buffer),
		Enabled:  make(map[uint32]bool),
		Matrices: make(map[int32]math.Mat4),
		Vectors:  make(map[int32][4]float32),
		Caps:     make(map[gpu.Capability]bool),
		bound:    make(map[gpu.BufferTarget]uint32),
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Bound returns the buffer bound to target.
func (d *Device) Bound(target gpu.BufferTarget) uint32 {
	return d.bound[target]
}

// ShaderDeleted reports whether DeleteShader was called for shader.
func (d *Device) ShaderDeleted(shader uint32) bool {
	s, ok := d.shaders[shader]
	return ok && s.deleted
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int {
	n := 0
	for _, s := range d.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int {
	n := 0
	for _, p := range d.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// ResetDraws forgets recorded draws, pointers and clears.
func (d *Device) ResetDraws() {
	d.Draws = nil
	d.Pointers = nil
	d.Clears = 0
}

func (d *Device) CreateBuffer() uint32 {
	id := d.id()
	d.Buffers[id] = &Buffer{}
	return id
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	d.bound[target] = buffer
}

func (d *Device) target(target gpu.BufferTarget) *Buffer {
	buf, ok := d.Buffers[d.bound[target]]
	if !ok {
		panic(fmt.Sprintf("gputest: no buffer bound to target 0x%x", uint32(target)))
	}
	return buf
}

func (d *Device) BufferFloat32(target gpu.BufferTarget, data []float32, usage gpu.Usage) {
	buf := d.target(target)
	buf.Float32 = append([]float32(nil), data...)
	buf.Uint16 = nil
	buf.Usage = usage
	buf.Uploads++
}

func (d *Device) BufferUint16(target gpu.BufferTarget, data []uint16, usage gpu.Usage) {
	buf := d.target(target)
	buf.Uint16 = append([]uint16(nil), data...)
	buf.Float32 = nil
	buf.Usage = usage
	buf.Uploads++
}

func (d *Device) CreateShader(stage gpu.ShaderStage) uint32 {
	id := d.id()
	d.shaders[id] = &shaderObject{stage: stage}
	return id
}

func (d *Device) ShaderSource(shader uint32, source string) {
	d.shaders[shader].source = source
}

func (d *Device) CompileShader(shader uint32) {
	s := d.shaders[shader]
	s.log = checkSource(s.source)
	s.compiled = s.log == ""
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	return d.shaders[shader].compiled
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	return d.shaders[shader].log
}

func (d *Device) DeleteShader(shader uint32) {
	if s, ok := d.shaders[shader]; ok {
		s.deleted = true
	}
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &programObject{}
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	p := d.programs[program]
	p.shaders = append(p.shaders, shader)
}

var (
	inDecl      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+\w+\s+(\w+)\s*;`)
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
)

func (d *Device) LinkProgram(program uint32) {
	p := d.programs[program]
	p.attribs = make(map[string]int32)
	p.uniforms = make(map[string]int32)

	if d.LinkError != "" {
		p.linked = false
		p.log = d.LinkError
		return
	}

	stages := make(map[gpu.ShaderStage]bool)
	for _, id := range p.shaders {
		s := d.shaders[id]
		if !s.compiled {
			p.log = "error: attached shader is not compiled"
			return
		}
		stages[s.stage] = true

		if s.stage == gpu.VertexShader {
			for _, m := range inDecl.FindAllStringSubmatch(s.source, -1) {
				p.attribs[m[1]] = int32(len(p.attribs))
			}
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			if _, ok := p.uniforms[m[1]]; !ok {
				p.uniforms[m[1]] = int32(len(p.uniforms))
			}
		}
	}
	if !stages[gpu.VertexShader] || !stages[gpu.FragmentShader] {
		p.log = "error: program needs a vertex and a fragment shader"
		return
	}
	p.linked = true
	p.log = ""
}

func (d *Device) ProgramLinked(program uint32) bool {
	return d.programs[program].linked
}

func (d *Device) ProgramInfoLog(program uint32) string {
	return d.programs[program].log
}

func (d *Device) DeleteProgram(program uint32) {
	if p, ok := d.programs[program]; ok {
		p.deleted = true
	}
}

func (d *Device) UseProgram(program uint32) {
	d.Program = program
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	if loc, ok := d.programs[program].attribs[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	if loc, ok := d.programs[program].uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m math.Mat4) {
	d.Matrices[location] = m
}

func (d *Device) Uniform4(location int32, v [4]float32) {
	d.Vectors[location] = v
}

func (d *Device) VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset int) {
	d.Pointers = append(d.Pointers, AttribPointer{
		Index:      index,
		Size:       size,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
		Buffer:     d.bound[gpu.ArrayBuffer],
	})
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.Enabled[index] = true
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32, indexType gpu.IndexType, offset int) {
	d.Draws = append(d.Draws, DrawCall{
		Mode:          mode,
		Count:         count,
		IndexType:     indexType,
		Offset:        offset,
		ElementBuffer: d.bound[gpu.ElementArrayBuffer],
		ArrayBuffer:   d.bound[gpu.ArrayBuffer],
		Program:       d.Program,
	})
}

func (d *Device) Enable(c gpu.Capability) {
	d.Caps[c] = true
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.Clear4 = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask gpu.ClearMask) {
	if mask&gpu.ColorBufferBit != 0 && mask&gpu.DepthBufferBit != 0 {
		d.Clears++
	}
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.ViewportV = [4]int32{x, y, width, height}
}

// ReadPixels returns Pixels when set, otherwise a zeroed RGBA block.
func (d *Device) ReadPixels(x, y, width, height int32) []byte {
	if d.Pixels != nil {
		return d.Pixels
	}
	return make([]byte, int(width)*int(height)*4)
}

// checkSource is a shallow GLSL check: a version line, a main function and
// balanced brackets. It returns a driver-style diagnostic or "".
func checkSource(src string) string {
	if !strings.HasPrefix(strings.TrimSpace(src), "#version") {
		return "0:1: error: missing #version directive"
	}
	if !strings.Contains(src, "void main") {
		return "0:0: error: missing main function"
	}

	var stack []rune
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	line := 1
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '(', '{', '[':
			stack = append(stack, r)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return fmt.Sprintf("0:%d: error: syntax error, unexpected '%c'", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Sprintf("0:%d: error: syntax error, unexpected end of file", line)
	}
	return ""
}
