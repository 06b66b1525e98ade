package renderer

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// CubePassBuilderOption is a functional option applied to a cube pass during construction via NewCubePass.
type CubePassBuilderOption func(*cubePass)

// WithShaderValidation toggles compiling the cube shaders with naga before they reach the GPU.
// Validation is on by default.
//
// Parameters:
//   - validate: false to skip validation
//
// Returns:
//   - CubePassBuilderOption: a function that applies the validation option to a cube pass
func WithShaderValidation(validate bool) CubePassBuilderOption {
	return func(c *cubePass) {
		c.validateShaders = validate
	}
}

// WithCubeCullMode sets the face culling of the cube pipeline. The default culls back faces.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - CubePassBuilderOption: a function that applies the cull mode to a cube pass
func WithCubeCullMode(mode wgpu.CullMode) CubePassBuilderOption {
	return func(c *cubePass) {
		c.cullMode = mode
	}
}

// WithCubeLogger sets the logger of the cube pass. Nil is ignored.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - CubePassBuilderOption: a function that applies the logger to a cube pass
func WithCubeLogger(logger *slog.Logger) CubePassBuilderOption {
	return func(c *cubePass) {
		if logger != nil {
			c.logger = logger
		}
	}
}
