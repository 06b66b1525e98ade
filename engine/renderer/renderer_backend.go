package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoFrame is returned when a draw is issued outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("no frame in progress")

	// ErrFrameInProgress is returned when BeginFrame is called before the previous frame was presented.
	ErrFrameInProgress = errors.New("previous frame surface not yet presented")

	// ErrNotRegistered is returned when a draw references a pipeline that has no GPU pipeline yet.
	ErrNotRegistered = errors.New("pipeline not registered")
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// surfacePresentMode maps the mode onto the surface present mode. Fifo is the only mode every adapter supports.
func (m PresentMode) surfacePresentMode() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA converts a sample count into an MSAASampleCount.
// Zero is treated as off.
//
// Parameters:
//   - samples: the requested sample count
//
// Returns:
//   - MSAASampleCount: the matching sample count
//   - error: error if the count is not supported on every adapter
func ParseMSAA(samples int) (MSAASampleCount, error) {
	switch samples {
	case 0, 1:
		return MSAAOff, nil
	case 4:
		return MSAA4x, nil
	default:
		return MSAAOff, fmt.Errorf("unsupported msaa sample count %d (want 1 or 4)", samples)
	}
}

// DefaultClearColor is the background the surface is cleared to each frame.
var DefaultClearColor = wgpu.Color{R: 0.8, G: 0.9, B: 0.9, A: 1.0}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
