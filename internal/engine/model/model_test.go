package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/twistview/internal/engine/gpu"
	"github.com/Faultbox/twistview/internal/engine/gpu/gputest"
	"github.com/Faultbox/twistview/internal/engine/surface"
)

func TestNewAllocatesBuffers(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")

	assert.Equal(t, "Surface", m.Name())
	assert.Len(t, dev.Buffers, 3)
	assert.Zero(t, m.UCount())
	assert.Zero(t, m.VCount())
}

func TestUploadRoundTrip(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")
	mesh := surface.Generate()

	require.NoError(t, m.Upload(mesh))

	assert.Equal(t, int32(len(mesh.UIndices)), m.UCount())
	assert.Equal(t, int32(len(mesh.VIndices)), m.VCount())
	assert.Equal(t, int32(5512), m.UCount())
	assert.Equal(t, int32(5512), m.VCount())

	vb := dev.Buffers[m.vertexBuffer]
	assert.Equal(t, mesh.Vertices, vb.Float32)
	assert.Equal(t, gpu.StreamDraw, vb.Usage)
	assert.Equal(t, mesh.UIndices, dev.Buffers[m.uIndexBuffer].Uint16)
	assert.Equal(t, mesh.VIndices, dev.Buffers[m.vIndexBuffer].Uint16)
	assert.Equal(t, gpu.StreamDraw, dev.Buffers[m.vIndexBuffer].Usage)
}

func TestReuploadKeepsBuffers(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")
	require.NoError(t, m.Upload(surface.Generate()))

	small := &surface.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		UIndices: []uint16{0, 1},
		VIndices: []uint16{0, 2, 1, 2},
	}
	require.NoError(t, m.Upload(small))

	assert.Len(t, dev.Buffers, 3)
	assert.Equal(t, 2, dev.Buffers[m.vertexBuffer].Uploads)
	assert.Equal(t, int32(2), m.UCount())
	assert.Equal(t, int32(4), m.VCount())
}

func TestDrawBeforeUpload(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")

	m.Draw(0)

	require.Len(t, dev.Draws, 2)
	for _, d := range dev.Draws {
		assert.Equal(t, gpu.Lines, d.Mode)
		assert.Zero(t, d.Count)
	}
}

func TestDrawIssuesTwoLineLists(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")
	require.NoError(t, m.Upload(surface.Generate()))

	m.Draw(3)

	require.Len(t, dev.Pointers, 1)
	p := dev.Pointers[0]
	assert.Equal(t, uint32(3), p.Index)
	assert.Equal(t, int32(3), p.Size)
	assert.False(t, p.Normalized)
	assert.Zero(t, p.Stride)
	assert.Zero(t, p.Offset)
	assert.Equal(t, m.vertexBuffer, p.Buffer)
	assert.True(t, dev.Enabled[3])

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, gputest.DrawCall{
		Mode: gpu.Lines, Count: 5512, IndexType: gpu.UnsignedShort,
		ElementBuffer: m.uIndexBuffer, ArrayBuffer: m.vertexBuffer,
	}, dev.Draws[0])
	assert.Equal(t, gputest.DrawCall{
		Mode: gpu.Lines, Count: 5512, IndexType: gpu.UnsignedShort,
		ElementBuffer: m.vIndexBuffer, ArrayBuffer: m.vertexBuffer,
	}, dev.Draws[1])
}

func TestDrawSkipsInactiveAttribute(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")

	m.Draw(-1)

	assert.Empty(t, dev.Pointers)
	assert.Len(t, dev.Draws, 2)
}

func TestUploadRejectsOutOfRangeIndex(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")
	bad := &surface.Mesh{
		Vertices: []float32{0, 0, 0, 1, 1, 1},
		UIndices: []uint16{0, 2},
	}

	err := m.Upload(bad)
	assert.True(t, errors.Is(err, ErrIndexRange))
	assert.Zero(t, m.UCount())
	assert.Zero(t, dev.Buffers[m.vertexBuffer].Uploads)
}

func TestUploadRejectsTooManyVertices(t *testing.T) {
	dev := gputest.New()
	m := New(dev, "Surface")
	huge := &surface.Mesh{Vertices: make([]float32, 3*(surface.MaxVertices+1))}

	err := m.Upload(huge)
	assert.True(t, errors.Is(err, ErrIndexRange))
}
