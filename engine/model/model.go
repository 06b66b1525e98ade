package model

import (
	"github.com/Carmen-Shannon/dig/common"
)

// model is the implementation of the Model interface.
type model struct {
	name     string
	vertices []GPUVertex
	indices  []uint16
}

// Model defines the interface for an indexed triangle-list mesh ready for GPU upload.
// Vertices carry a position and a colour; indices are 16-bit.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices retrieves the mesh vertices.
	//
	// Returns:
	//   - []GPUVertex: the vertices in upload order
	Vertices() []GPUVertex

	// Indices retrieves the triangle-list indices.
	//
	// Returns:
	//   - []uint16: three indices per triangle
	Indices() []uint16

	// VertexCount returns the number of vertices.
	VertexCount() int

	// IndexCount returns the number of indices, which is what a draw call consumes.
	IndexCount() int

	// VertexBytes serializes every vertex into one contiguous little-endian buffer.
	//
	// Returns:
	//   - []byte: VertexCount() * GPUVertexSize bytes
	VertexBytes() []byte

	// IndexBytes serializes the indices, zero-padded to a multiple of 4 bytes as required
	// for WebGPU buffer writes. The padding is never read because draws use IndexCount().
	//
	// Returns:
	//   - []byte: the index bytes
	IndexBytes() []byte
}

var _ Model = &model{}

// NewModel creates a new Model with the given options applied.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint16 {
	return m.indices
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) VertexBytes() []byte {
	buf := make([]byte, 0, len(m.vertices)*GPUVertexSize)
	for i := range m.vertices {
		buf = append(buf, m.vertices[i].Marshal()...)
	}
	return buf
}

func (m *model) IndexBytes() []byte {
	raw := make([]byte, len(m.indices)*2)
	copy(raw, common.SliceToBytes(m.indices))
	return common.PadTo(raw, 4)
}
