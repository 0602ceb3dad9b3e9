// Package model owns the GPU buffers of the surface mesh and draws it as
// two line lists.
package model

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/internal/engine/surface"
	"github.com/Faultbox/twistview/internal/logger"
)

// ErrIndexRange is returned when a mesh cannot be drawn with 16-bit indices.
var ErrIndexRange = errors.New("mesh index out of 16-bit range")

// Model holds one vertex buffer and two index buffers. The buffers are
// allocated once by New and refilled by every Upload.
type Model struct {
	name string
	dev  gpu.Device

	vertexBuffer uint32
	uIndexBuffer uint32
	vIndexBuffer uint32

	uCount int32
	vCount int32
}

// New allocates the three buffers. Counts start at zero, so drawing before
// the first Upload issues empty draws.
func New(dev gpu.Device, name string) *Model {
	return &Model{
		name:         name,
		dev:          dev,
		vertexBuffer: dev.CreateBuffer(),
		uIndexBuffer: dev.CreateBuffer(),
		vIndexBuffer: dev.CreateBuffer(),
	}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// UCount returns the number of indices in the u line list.
func (m *Model) UCount() int32 { return m.uCount }

// VCount returns the number of indices in the v line list.
func (m *Model) VCount() int32 { return m.vCount }

// Upload copies the mesh into the GPU buffers with a streaming usage hint
// and records the index counts. Meshes that 16-bit indices cannot address
// are rejected before anything is sent to the device.
func (m *Model) Upload(mesh *surface.Mesh) error {
	if err := checkIndices(mesh); err != nil {
		return fmt.Errorf("upload %s: %w", m.name, err)
	}

	m.dev.BindBuffer(gpu.ArrayBuffer, m.vertexBuffer)
	m.dev.BufferFloat32(gpu.ArrayBuffer, mesh.Vertices, gpu.StreamDraw)

	m.dev.BindBuffer(gpu.ElementArrayBuffer, m.uIndexBuffer)
	m.dev.BufferUint16(gpu.ElementArrayBuffer, mesh.UIndices, gpu.StreamDraw)
	m.uCount = int32(len(mesh.UIndices))

	m.dev.BindBuffer(gpu.ElementArrayBuffer, m.vIndexBuffer)
	m.dev.BufferUint16(gpu.ElementArrayBuffer, mesh.VIndices, gpu.StreamDraw)
	m.vCount = int32(len(mesh.VIndices))

	logger.Debug("mesh uploaded",
		zap.String("model", m.name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int32("uCount", m.uCount),
		zap.Int32("vCount", m.vCount),
	)
	return nil
}

func checkIndices(mesh *surface.Mesh) error {
	n := mesh.VertexCount()
	if n > surface.MaxVertices {
		return fmt.Errorf("%w: %d vertices", ErrIndexRange, n)
	}
	for _, list := range [][]uint16{mesh.UIndices, mesh.VIndices} {
		for _, idx := range list {
			if int(idx) >= n {
				return fmt.Errorf("%w: index %d with %d vertices", ErrIndexRange, idx, n)
			}
		}
	}
	return nil
}

// Draw binds the vertex buffer to the position attribute at attrib and
// issues one line-list draw per index buffer. The caller must have made a
// program current.
func (m *Model) Draw(attrib int32) {
	m.dev.BindBuffer(gpu.ArrayBuffer, m.vertexBuffer)
	if attrib >= 0 {
		m.dev.VertexAttribPointer(uint32(attrib), 3, false, 0, 0)
		m.dev.EnableVertexAttribArray(uint32(attrib))
	}

	m.dev.BindBuffer(gpu.ElementArrayBuffer, m.uIndexBuffer)
	m.dev.DrawElements(gpu.Lines, m.uCount, gpu.UnsignedShort, 0)

	m.dev.BindBuffer(gpu.ElementArrayBuffer, m.vIndexBuffer)
	m.dev.DrawElements(gpu.Lines, m.vCount, gpu.UnsignedShort, 0)
}
