package shader

// ShaderBuilderOption is a functional option for configuring a Shader via NewShader.
type ShaderBuilderOption func(*shader)

// WithValidation toggles compiling the source with naga before it is accepted.
//
// Parameters:
//   - enabled: false skips validation and leaves errors to the GPU driver
//
// Returns:
//   - ShaderBuilderOption: a function that applies the validation option to a shader
func WithValidation(enabled bool) ShaderBuilderOption {
	return func(s *shader) {
		s.validate = enabled
	}
}
