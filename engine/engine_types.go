package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/dig/engine/input"
	"github.com/Carmen-Shannon/dig/engine/scene"
)

var (
	// ErrNoScene is returned by Run when the engine was built without a scene.
	ErrNoScene = errors.New("engine: no scene")

	// ErrNoEventSource is returned by Run when the engine was built without an event source.
	ErrNoEventSource = errors.New("engine: no event source")

	// ErrNoFrameRenderer is returned by Run when the engine was built without a frame renderer.
	ErrNoFrameRenderer = errors.New("engine: no frame renderer")
)

const (
	// DefaultFrameInterval is how long the event-driven loop waits for input before rendering.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultPollingFPSInterval is the throughput window used by LoopModePolling, in milliseconds.
	DefaultPollingFPSInterval int64 = 1000

	// DefaultEventDrivenFPSInterval is the throughput window used by LoopModeEventDriven, in milliseconds.
	DefaultEventDrivenFPSInterval int64 = 10000
)

// State is the lifecycle state of the frame loop.
type State int32

const (
	// StateRunning is the initial state: the loop processes events and renders.
	StateRunning State = iota

	// StateClosing is terminal: the loop stops at the next check and Run returns.
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// LoopMode selects how the frame loop waits for events between frames.
type LoopMode int

const (
	// LoopModePolling polls for events without blocking and renders on every tick.
	LoopModePolling LoopMode = iota

	// LoopModeEventDriven blocks for events for at most the frame interval, then renders.
	LoopModeEventDriven
)

func (m LoopMode) String() string {
	switch m {
	case LoopModePolling:
		return "polling"
	case LoopModeEventDriven:
		return "event"
	default:
		return fmt.Sprintf("LoopMode(%d)", int(m))
	}
}

// ParseLoopMode converts a command-line mode name into a LoopMode.
//
// Parameters:
//   - s: "polling" or "event"
//
// Returns:
//   - LoopMode: the parsed mode
//   - error: error if the name is unknown
func ParseLoopMode(s string) (LoopMode, error) {
	switch s {
	case "polling", "poll":
		return LoopModePolling, nil
	case "event", "event-driven":
		return LoopModeEventDriven, nil
	default:
		return 0, fmt.Errorf("unknown loop mode %q", s)
	}
}

// EventSource delivers window and input events to the frame loop.
type EventSource interface {
	// PollEvents returns every event that arrived since the previous call without blocking.
	PollEvents() []input.Event

	// WaitEvents blocks until at least one event arrives or the timeout elapses,
	// then returns every pending event.
	WaitEvents(timeout time.Duration) []input.Event
}

// FrameRenderer draws the scene once per render tick.
type FrameRenderer interface {
	// RenderFrame clears the surface, draws the scene and presents the result.
	// A returned error stops the frame loop.
	RenderFrame(s scene.Scene) error

	// Resize reconfigures the render targets for a new framebuffer size in pixels.
	// A returned error stops the frame loop.
	Resize(width, height int) error
}

// TitleSetter is implemented by windows whose title can show the measured frame rate.
type TitleSetter interface {
	SetTitle(title string)
}

// spinCommand is a queued change to one of the scene's spin-intent flags.
type spinCommand struct {
	axis scene.Axis
	dir  scene.Direction
	on   bool
}
