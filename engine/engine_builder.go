package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/dig/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithEventSource sets where the loop reads window and input events from.
//
// Parameters:
//   - src: the event source, normally the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEventSource(src EventSource) EngineBuilderOption {
	return func(e *engine) {
		e.events = src
	}
}

// WithFrameRenderer sets the renderer invoked on every render tick.
//
// Parameters:
//   - r: the frame renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene driven by the loop.
//
// Parameters:
//   - s: the Scene to update and render
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithLogger sets the logger used by the loop and its profiler. Nil is ignored.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLoopMode selects polling or event-driven waiting between frames.
//
// Parameters:
//   - mode: the loop mode (default LoopModePolling)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoopMode(mode LoopMode) EngineBuilderOption {
	return func(e *engine) {
		e.mode = mode
	}
}

// WithFPSInterval overrides the throughput window length. Values <= 0 keep the mode default.
//
// Parameters:
//   - ms: window length in milliseconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFPSInterval(ms int64) EngineBuilderOption {
	return func(e *engine) {
		if ms > 0 {
			e.fpsInterval = ms
		}
	}
}

// WithFrameInterval sets the longest the event-driven loop waits for input before rendering.
// Values <= 0 keep DefaultFrameInterval.
//
// Parameters:
//   - d: the wait timeout
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameInterval(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if d > 0 {
			e.frameInterval = d
		}
	}
}

// WithMemStats adds heap and GC statistics to each throughput log line.
//
// Parameters:
//   - enabled: if true, memory statistics are reported
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMemStats(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.memStats = enabled
	}
}

// WithClock replaces the monotonic clock used for frame timing.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithTitleFPS shows the last measured frame rate in the window title after each throughput window.
//
// Parameters:
//   - t: the window whose title is updated
//   - baseTitle: the title the frame rate is appended to
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTitleFPS(t TitleSetter, baseTitle string) EngineBuilderOption {
	return func(e *engine) {
		e.titleSetter = t
		e.baseTitle = baseTitle
	}
}
