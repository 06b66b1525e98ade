package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/dig/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/dig/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/dig/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeBackend records the calls the renderer makes instead of touching a GPU.
type fakeBackend struct {
	calls []string

	configured   [][2]int
	configureErr error
	presentMode  PresentMode

	registered  []string
	registerErr error

	vertexData  []byte
	indexData   []byte
	indexCount  int
	indexFormat wgpu.IndexFormat

	bindGroups []wgpu.BindGroupLayoutDescriptor
	writes     []bind_group_provider.BufferWrite

	beginErr error
	drawErr  error
	drawn    []string
	released bool
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) Device() *wgpu.Device   { return nil }
func (f *fakeBackend) Queue() *wgpu.Queue     { return nil }
func (f *fakeBackend) Adapter() *wgpu.Adapter { return nil }
func (f *fakeBackend) Surface() *wgpu.Surface { return nil }

func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat {
	return wgpu.TextureFormatBGRA8Unorm
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) {
	f.presentMode = mode
}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, p.PipelineKey())
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int, indexFormat wgpu.IndexFormat) error {
	f.vertexData, f.indexData = vertexData, indexData
	f.indexCount, f.indexFormat = indexCount, indexFormat
	provider.SetIndexCount(indexCount)
	provider.SetIndexFormat(indexFormat)
	return nil
}

func (f *fakeBackend) InitBindGroup(_ bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, _ map[int]uint64) error {
	f.bindGroups = append(f.bindGroups, descriptor)
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) error {
	f.calls = append(f.calls, "write")
	f.writes = append(f.writes, writes...)
	return nil
}

func (f *fakeBackend) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	return f.beginErr
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, _ uint32, _ []bind_group_provider.BindGroupProvider) error {
	f.calls = append(f.calls, "draw")
	if f.drawErr != nil {
		return f.drawErr
	}
	f.drawn = append(f.drawn, p.PipelineKey())
	return nil
}

func (f *fakeBackend) EndFrame() error {
	f.calls = append(f.calls, "end")
	return nil
}

func (f *fakeBackend) Present() {
	f.calls = append(f.calls, "present")
}

func (f *fakeBackend) Release() {
	f.released = true
}

func newTestRenderer(t *testing.T, backend *fakeBackend, options ...RendererBuilderOption) *renderer {
	t.Helper()
	r := newRenderer(options...)
	if err := r.attach(backend, 800, 600); err != nil {
		t.Fatalf("attach: %v", err)
	}
	return r
}

func newTestPipeline(t *testing.T, key string) pipeline.Pipeline {
	t.Helper()
	vs, err := shader.NewShader(key+".vert", shader.ShaderTypeVertex, CubeVertexSource(), shader.WithValidation(false))
	if err != nil {
		t.Fatalf("NewShader(vertex): %v", err)
	}
	fs, err := shader.NewShader(key+".frag", shader.ShaderTypeFragment, CubeFragmentSource(), shader.WithValidation(false))
	if err != nil {
		t.Fatalf("NewShader(fragment): %v", err)
	}
	return pipeline.NewPipeline(key, pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))
}

func TestParseMSAA(t *testing.T) {
	tests := []struct {
		in      int
		want    MSAASampleCount
		wantErr bool
	}{
		{0, MSAAOff, false},
		{1, MSAAOff, false},
		{4, MSAA4x, false},
		{2, MSAAOff, true},
		{8, MSAAOff, true},
		{-1, MSAAOff, true},
	}

	for _, tt := range tests {
		got, err := ParseMSAA(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMSAA(%d) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMSAA(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPresentMode(t *testing.T) {
	if got := PresentModeVSync.surfacePresentMode(); got != wgpu.PresentModeFifo {
		t.Errorf("vsync maps to %v, want Fifo", got)
	}
	if got := PresentModeUncapped.surfacePresentMode(); got != wgpu.PresentModeImmediate {
		t.Errorf("uncapped maps to %v, want Immediate", got)
	}
	if PresentModeVSync.String() != "vsync" || PresentModeUncapped.String() != "uncapped" {
		t.Errorf("String() = %q/%q", PresentModeVSync, PresentModeUncapped)
	}
}

func TestRendererAttach(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend,
		WithPresentMode(PresentModeUncapped),
		WithPipelines(newTestPipeline(t, "cube")),
	)

	if backend.presentMode != PresentModeUncapped {
		t.Errorf("present mode = %v, want uncapped", backend.presentMode)
	}
	if len(backend.configured) != 1 || backend.configured[0] != [2]int{800, 600} {
		t.Errorf("configured = %v, want [[800 600]]", backend.configured)
	}
	if r.Width() != 800 || r.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", r.Width(), r.Height())
	}
	if r.Pipeline("cube") == nil {
		t.Error("pipeline from WithPipelines was not registered")
	}
}

func TestRendererDefaults(t *testing.T) {
	r := newRenderer()
	if r.msaa != MSAAOff {
		t.Errorf("msaa = %d, want off", r.msaa)
	}
	if r.presentMode != PresentModeVSync {
		t.Errorf("present mode = %v, want vsync", r.presentMode)
	}
	if r.clearColor != (wgpu.Color{R: 0.8, G: 0.9, B: 0.9, A: 1}) {
		t.Errorf("clear colour = %+v", r.clearColor)
	}
}

func TestRendererOptions(t *testing.T) {
	black := wgpu.Color{A: 1}
	r := newRenderer(
		WithClearColor(black),
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAA4x),
		WithForceSoftwareRenderer(true),
		WithLogger(nil),
	)
	if r.clearColor != black {
		t.Errorf("clear colour = %+v, want %+v", r.clearColor, black)
	}
	if r.presentMode != PresentModeUncapped || r.msaa != MSAA4x || !r.forceFallbackAdapter {
		t.Errorf("present/msaa/fallback = %v/%d/%v", r.presentMode, r.msaa, r.forceFallbackAdapter)
	}
	if r.logger == nil {
		t.Error("WithLogger(nil) cleared the logger")
	}
}

func TestRendererResize(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	for _, size := range [][2]int{{0, 600}, {800, 0}, {-1, -1}} {
		if err := r.Resize(size[0], size[1]); err != nil {
			t.Errorf("Resize(%v) = %v", size, err)
		}
	}
	if len(backend.configured) != 1 {
		t.Fatalf("empty sizes reconfigured the surface: %v", backend.configured)
	}

	if err := r.Resize(1024, 768); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if r.Width() != 1024 || r.Height() != 768 {
		t.Errorf("size = %dx%d, want 1024x768", r.Width(), r.Height())
	}

	boom := errors.New("boom")
	backend.configureErr = boom
	if err := r.Resize(640, 480); !errors.Is(err, boom) {
		t.Errorf("Resize error = %v, want wrapped boom", err)
	}
	if r.Width() != 1024 {
		t.Errorf("failed resize changed width to %d", r.Width())
	}
}

func TestRegisterPipelines(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	p := newTestPipeline(t, "cube")
	if err := r.RegisterPipelines(p, p); err != nil {
		t.Fatalf("RegisterPipelines: %v", err)
	}
	if err := r.RegisterPipelines(p); err != nil {
		t.Fatalf("RegisterPipelines again: %v", err)
	}
	if len(backend.registered) != 1 {
		t.Errorf("backend registered %v, want one pipeline", backend.registered)
	}
	if len(r.Pipelines()) != 1 {
		t.Errorf("cache has %d pipelines, want 1", len(r.Pipelines()))
	}

	if err := r.RegisterPipelines(pipeline.NewPipeline("empty")); !errors.Is(err, pipeline.ErrMissingShader) {
		t.Errorf("RegisterPipelines(empty) = %v, want ErrMissingShader", err)
	}
	if r.Pipeline("empty") != nil {
		t.Error("invalid pipeline was cached")
	}

	backend.registerErr = errors.New("device lost")
	if err := r.RegisterPipelines(newTestPipeline(t, "other")); err == nil {
		t.Error("backend failure was not returned")
	}
}

func TestDrawCallUnknownPipeline(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend)

	err := r.DrawCall("missing", bind_group_provider.NewBindGroupProvider("mesh"), 1, nil)
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("DrawCall() = %v, want ErrNotRegistered", err)
	}
	if len(backend.drawn) != 0 {
		t.Error("backend draw issued for unknown pipeline")
	}
}

func TestRendererRelease(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, backend, WithPipelines(newTestPipeline(t, "cube")))

	r.Release()
	if !backend.released {
		t.Error("backend not released")
	}
	if len(r.Pipelines()) != 0 {
		t.Error("pipeline cache not cleared")
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	uniform := func(binding uint32, vis wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: vis}
		e.Buffer.Type = wgpu.BufferBindingTypeUniform
		return e
	}

	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "v0", Entries: []wgpu.BindGroupLayoutEntry{uniform(0, wgpu.ShaderStageVertex)}},
		1: {Label: "v1", Entries: []wgpu.BindGroupLayoutEntry{uniform(0, wgpu.ShaderStageVertex)}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "f0", Entries: []wgpu.BindGroupLayoutEntry{
			uniform(2, wgpu.ShaderStageFragment),
			uniform(0, wgpu.ShaderStageFragment),
		}},
		2: {Label: "f2", Entries: []wgpu.BindGroupLayoutEntry{uniform(0, wgpu.ShaderStageFragment)}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	if len(merged) != 3 {
		t.Fatalf("merged %d groups, want 3", len(merged))
	}

	g0 := merged[0]
	if g0.Label != "v0" || len(g0.Entries) != 2 {
		t.Fatalf("group 0 = %+v", g0)
	}
	if g0.Entries[0].Binding != 0 || g0.Entries[1].Binding != 2 {
		t.Errorf("group 0 bindings not sorted: %d, %d", g0.Entries[0].Binding, g0.Entries[1].Binding)
	}
	if want := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment; g0.Entries[0].Visibility != want {
		t.Errorf("shared binding visibility = %v, want %v", g0.Entries[0].Visibility, want)
	}
	if merged[1].Label != "v1" || merged[2].Label != "f2" {
		t.Errorf("single-stage groups not copied: %q, %q", merged[1].Label, merged[2].Label)
	}
}
