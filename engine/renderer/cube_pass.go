package renderer

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/dig/engine/camera"
	"github.com/Carmen-Shannon/dig/engine/model"
	"github.com/Carmen-Shannon/dig/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/dig/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/dig/engine/renderer/shader"
	"github.com/Carmen-Shannon/dig/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/cube.vert.wgsl
var cubeVertexBody string

//go:embed assets/cube.frag.wgsl
var cubeFragmentSource string

const (
	// CubePipelineKey is the key the cube pipeline is registered under.
	CubePipelineKey = "cube"

	// transformGroup is the bind group holding the TransformUniform.
	transformGroup = 0
)

// CubeVertexSource returns the full vertex stage WGSL: the vertex input struct,
// the transform uniform struct and the cube vertex entry point.
func CubeVertexSource() string {
	return strings.Join([]string{model.GPUVertexSource, camera.GPUTransformUniformSource, cubeVertexBody}, "\n")
}

// CubeFragmentSource returns the fragment stage WGSL of the cube pass.
func CubeFragmentSource() string {
	return cubeFragmentSource
}

// cubePass is the implementation of the CubePass interface.
type cubePass struct {
	renderer Renderer
	logger   *slog.Logger
	model    model.Model

	validateShaders bool
	cullMode        wgpu.CullMode

	pipeline         pipeline.Pipeline
	mesh             bind_group_provider.BindGroupProvider
	transform        bind_group_provider.BindGroupProvider
	transformBinding int
}

// CubePass draws one indexed model with the scene's projection, view and world matrices.
// It is the frame loop's FrameRenderer.
type CubePass interface {
	// RenderFrame uploads the scene matrices, clears the surface, draws the model and presents.
	//
	// Parameters:
	//   - s: the scene whose matrices are drawn
	//
	// Returns:
	//   - error: an error if the frame could not be acquired, encoded or submitted
	RenderFrame(s scene.Scene) error

	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// Pipeline returns the registered cube pipeline.
	Pipeline() pipeline.Pipeline

	// Release frees the mesh and uniform buffers.
	Release()
}

var _ CubePass = &cubePass{}

// NewCubePass compiles the cube shaders, registers the pipeline and uploads the model.
//
// Parameters:
//   - r: the renderer to draw with
//   - m: the model to draw, 16-bit indexed
//   - options: functional options to configure the pass
//
// Returns:
//   - CubePass: the ready pass
//   - error: an error if a shader fails validation or a GPU resource could not be created
func NewCubePass(r Renderer, m model.Model, options ...CubePassBuilderOption) (CubePass, error) {
	c := &cubePass{
		renderer:        r,
		logger:          slog.Default(),
		model:           m,
		validateShaders: true,
		cullMode:        wgpu.CullModeBack,
	}
	for _, opt := range options {
		opt(c)
	}

	p, err := c.buildPipeline()
	if err != nil {
		return nil, err
	}
	if err := r.RegisterPipelines(p); err != nil {
		return nil, fmt.Errorf("cube pass: %w", err)
	}
	c.pipeline = p

	vs := p.Shader(shader.ShaderTypeVertex)
	binding, ok := vs.BindGroupFromVarName(transformGroup, "transform")
	if !ok {
		return nil, fmt.Errorf("cube pass: vertex shader has no transform binding in group %d", transformGroup)
	}
	c.transformBinding = binding

	c.mesh = bind_group_provider.NewBindGroupProvider(m.Name() + " Mesh")
	if err := r.InitMeshBuffers(c.mesh, m.VertexBytes(), m.IndexBytes(), m.IndexCount(), wgpu.IndexFormatUint16); err != nil {
		c.Release()
		return nil, fmt.Errorf("cube pass: %w", err)
	}

	c.transform = bind_group_provider.NewBindGroupProvider(m.Name() + " Transform")
	if err := r.InitBindGroup(c.transform, vs.BindGroupLayoutDescriptor(transformGroup), nil); err != nil {
		c.Release()
		return nil, fmt.Errorf("cube pass: %w", err)
	}

	c.logger.Debug("cube pass ready",
		"model", m.Name(),
		"vertices", m.VertexCount(),
		"indices", m.IndexCount(),
		"spirv_bytes", vs.SPIRVSize(),
	)
	return c, nil
}

func (c *cubePass) buildPipeline() (pipeline.Pipeline, error) {
	vs, err := shader.NewShader("cube.vert", shader.ShaderTypeVertex, CubeVertexSource(), shader.WithValidation(c.validateShaders))
	if err != nil {
		return nil, fmt.Errorf("cube pass: %w", err)
	}
	fs, err := shader.NewShader("cube.frag", shader.ShaderTypeFragment, CubeFragmentSource(), shader.WithValidation(c.validateShaders))
	if err != nil {
		return nil, fmt.Errorf("cube pass: %w", err)
	}

	return pipeline.NewPipeline(CubePipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithCullMode(c.cullMode),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
	), nil
}

func (c *cubePass) RenderFrame(s scene.Scene) error {
	uniform := camera.NewGPUTransformUniform(s.ProjectionMatrix(), s.ViewMatrix(), s.WorldMatrix())
	if err := c.renderer.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: c.transform,
		Binding:  c.transformBinding,
		Data:     uniform.Marshal(),
	}}); err != nil {
		return err
	}

	if err := c.renderer.BeginFrame(); err != nil {
		return err
	}
	drawErr := c.renderer.DrawCall(CubePipelineKey, c.mesh, 1, []bind_group_provider.BindGroupProvider{c.transform})
	// The pass is always ended so the surface texture is released.
	endErr := c.renderer.EndFrame()
	if drawErr != nil {
		return drawErr
	}
	if endErr != nil {
		return endErr
	}
	c.renderer.Present()
	return nil
}

func (c *cubePass) Resize(width, height int) error {
	if err := c.renderer.Resize(width, height); err != nil {
		c.logger.Error("resize surface", "width", width, "height", height, "error", err)
		return err
	}
	return nil
}

func (c *cubePass) Pipeline() pipeline.Pipeline {
	return c.pipeline
}

func (c *cubePass) Release() {
	if c.mesh != nil {
		c.mesh.Release()
	}
	if c.transform != nil {
		c.transform.Release()
	}
}
