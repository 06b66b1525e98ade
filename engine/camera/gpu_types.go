package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUTransformUniformSource is the canonical WGSL definition of the TransformUniform struct.
// Matches GPUTransformUniform layout exactly (192 bytes).
//
//go:embed assets/transform_uniform.wgsl
var GPUTransformUniformSource string

// GPUTransformUniform is the GPU-aligned representation of the per-frame transform uniform buffer.
// Matches the WGSL TransformUniform struct layout exactly (see GPUTransformUniformSource).
// Size: 192 bytes, three column-major mat4x4<f32>.
type GPUTransformUniform struct {
	Projection [16]float32 // offset   0: projection matrix
	View       [16]float32 // offset  64: view matrix
	World      [16]float32 // offset 128: world matrix
}

// NewGPUTransformUniform packs the three scene matrices into the uniform layout.
//
// Parameters:
//   - projection, view, world: the matrices to upload
//
// Returns:
//   - GPUTransformUniform: the packed uniform
func NewGPUTransformUniform(projection, view, world mgl32.Mat4) GPUTransformUniform {
	return GPUTransformUniform{
		Projection: projection,
		View:       view,
		World:      world,
	}
}

// Size returns the size of the GPUTransformUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (192)
func (g *GPUTransformUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTransformUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUTransformUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Projection[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.View[i]))
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.World[i]))
	}
	return buf
}
