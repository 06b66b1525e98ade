package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader module feeds.
type ShaderType int

const (
	// ShaderTypeVertex is a module with a @vertex entry point.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is a module with a @fragment entry point, paired with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// ErrNoEntryPoint is returned by NewShader when the source has no entry point for the requested stage.
var ErrNoEntryPoint = errors.New("no entry point")

// shader is the implementation of the Shader interface.
// It holds the validated source plus the reflection data needed to build pipelines and bind groups.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	validate                   bool
	spirvSize                  int
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a parsed and validated WGSL shader module. It exposes the entry point, bind group
// layouts and vertex buffer layouts reflected from the source.
type Shader interface {
	// Key returns the unique identifier used as the module label and for lookups.
	Key() string

	// Source returns the WGSL source.
	Source() string

	// ShaderType returns the stage this shader feeds.
	ShaderType() ShaderType

	// EntryPoint returns the name of the stage's entry point function.
	EntryPoint() string

	// BindGroupLayoutDescriptor retrieves the layout descriptor reflected for one bind group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves every reflected bind group layout keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the WGSL variable declared at a group and binding.
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - string: the variable name, or "" if nothing is declared there
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName looks up the binding index of a variable within a group.
	//
	// Parameters:
	//   - group: the @group index
	//   - varName: the WGSL variable name
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VertexLayout retrieves the vertex buffer layouts reflected from one vertex input struct.
	//
	// Parameters:
	//   - key: the vertex input struct's index in declaration order
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, or nil if not set
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves every reflected vertex buffer layout. Empty for fragment shaders.
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// SPIRVSize returns the size in bytes of the SPIR-V produced when the source was validated,
	// or 0 when validation was disabled.
	SPIRVSize() int

	// Module returns the descriptor used to create the GPU shader module.
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader validates WGSL source and reflects the data needed for pipeline creation.
// Validation is on unless disabled with WithValidation(false).
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - shaderType: the stage the shader feeds
//   - source: the WGSL source
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the parsed shader
//   - error: error if the source is empty, lacks an entry point, declares an unsupported resource or fails validation
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader %s: empty source", key)
	}

	s := &shader{
		key:           key,
		source:        source,
		shaderType:    shaderType,
		vertexLayouts: make(map[int][]wgpu.VertexBufferLayout),
		validate:      true,
	}
	for _, opt := range options {
		opt(s)
	}

	s.entryPoint = parseEntryPoint(source, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("shader %s: %w for %s stage", key, ErrNoEntryPoint, shaderType)
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(source)
	}

	var err error
	s.bindGroupLayoutDescriptors, s.bindingVarNames, err = parseBindGroupLayouts(source, visibility)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	if s.validate {
		spirv, err := Validate(source)
		if err != nil {
			return nil, fmt.Errorf("shader %s: %w", key, err)
		}
		s.spirvSize = len(spirv)
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) SPIRVSize() int {
	return s.spirvSize
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
