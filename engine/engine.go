package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/dig/common"
	"github.com/Carmen-Shannon/dig/engine/input"
	"github.com/Carmen-Shannon/dig/engine/profiler"
	"github.com/Carmen-Shannon/dig/engine/scene"
)

// engine implements the Engine interface.
// Everything it touches is owned by the goroutine that calls Run.
type engine struct {
	state atomic.Int32

	logger *slog.Logger
	now    func() time.Time

	events   EventSource
	renderer FrameRenderer
	scene    scene.Scene

	mode          LoopMode
	frameInterval time.Duration
	fpsInterval   int64
	memStats      bool

	profiler *profiler.Profiler

	titleSetter TitleSetter
	baseTitle   string

	// pending spin commands, applied last-in first-out one per tick
	commands []spinCommand

	start      time.Time
	lastRender time.Time
	frames     uint64
}

// Engine is the single-threaded frame loop: it drains window events, turns arrow keys into
// spin commands, advances the scene by the real elapsed time and asks the renderer to draw it.
type Engine interface {
	// Run drives the frame loop until the window closes, Escape is pressed, Quit is called
	// or ctx is cancelled. It must be called from the goroutine that owns the window and GPU context.
	//
	// Parameters:
	//   - ctx: cancelling ctx closes the loop at the next tick
	//
	// Returns:
	//   - error: nil on a normal close, a wiring sentinel, or the wrapped render error that stopped the loop
	Run(ctx context.Context) error

	// Quit moves the loop to StateClosing. Safe to call multiple times.
	Quit()

	// State returns the current lifecycle state.
	State() State

	// Scene returns the scene driven by the loop.
	Scene() scene.Scene

	// Mode returns the loop mode.
	Mode() LoopMode

	// Frames returns the number of frames rendered since Run started.
	Frames() uint64

	// Profiler returns the throughput profiler fed by the loop.
	Profiler() *profiler.Profiler
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The FPS interval defaults to DefaultPollingFPSInterval or DefaultEventDrivenFPSInterval
// depending on the loop mode.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:        slog.Default(),
		now:           time.Now,
		mode:          LoopModePolling,
		frameInterval: DefaultFrameInterval,
	}

	for _, opt := range options {
		opt(e)
	}

	defaultInterval := DefaultPollingFPSInterval
	if e.mode == LoopModeEventDriven {
		defaultInterval = DefaultEventDrivenFPSInterval
	}
	e.fpsInterval = common.Coalesce(e.fpsInterval, defaultInterval)
	e.profiler = profiler.NewProfiler(
		profiler.WithLogger(e.logger),
		profiler.WithInterval(e.fpsInterval),
		profiler.WithMemStats(e.memStats),
	)

	return e
}

func (e *engine) Run(ctx context.Context) error {
	switch {
	case e.scene == nil:
		return ErrNoScene
	case e.events == nil:
		return ErrNoEventSource
	case e.renderer == nil:
		return ErrNoFrameRenderer
	}

	e.start = e.now()
	e.lastRender = e.start
	e.frames = 0
	e.commands = e.commands[:0]
	e.profiler.Reset(0)

	e.logger.Info("frame loop started",
		"mode", e.mode.String(),
		"fps_interval_ms", e.fpsInterval,
		"frame_interval", e.frameInterval,
	)

	for e.State() == StateRunning {
		if err := ctx.Err(); err != nil {
			e.logger.Info("frame loop cancelled", "cause", context.Cause(ctx))
			e.Quit()
			break
		}
		if err := e.tick(); err != nil {
			e.Quit()
			return err
		}
	}

	e.logger.Info("frame loop stopped", "frames", e.frames)
	return nil
}

func (e *engine) Quit() {
	e.state.Store(int32(StateClosing))
}

func (e *engine) State() State {
	return State(e.state.Load())
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Mode() LoopMode {
	return e.mode
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

// tick runs one iteration of the loop: drain events, then either apply a single queued
// spin command or render a frame.
func (e *engine) tick() error {
	var events []input.Event
	// Queued commands are drained without blocking so they do not delay the next render.
	if e.mode == LoopModeEventDriven && len(e.commands) == 0 {
		events = e.events.WaitEvents(e.frameInterval)
	} else {
		events = e.events.PollEvents()
	}

	for _, ev := range events {
		if err := e.handleEvent(ev); err != nil {
			return err
		}
		if e.State() != StateRunning {
			return nil
		}
	}

	if n := len(e.commands); n > 0 {
		cmd := e.commands[n-1]
		e.commands = e.commands[:n-1]
		e.scene.SetSpin(cmd.axis, cmd.dir, cmd.on)
		return nil
	}

	return e.render()
}

// handleEvent applies a single window or input event.
func (e *engine) handleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventClose:
		e.logger.Info("window close requested")
		e.Quit()
	case input.EventResize:
		return e.resize(ev.Width, ev.Height)
	case input.EventKey:
		e.handleKey(ev.Key, ev.Action)
	default:
		e.logger.Debug("ignoring event", "type", int(ev.Type))
	}
	return nil
}

func (e *engine) handleKey(key uint32, action input.Action) {
	if action == input.ActionRepeat {
		return
	}

	if key == common.KeyEsc {
		if action == input.ActionPress {
			e.logger.Info("escape pressed")
			e.Quit()
		}
		return
	}

	cmd, ok := spinCommandFor(key)
	if !ok {
		e.logger.Debug("ignoring key", "key", key, "action", action.String())
		return
	}
	cmd.on = action == input.ActionPress
	e.commands = append(e.commands, cmd)
}

// spinCommandFor maps an arrow key onto the spin-intent flag it drives.
func spinCommandFor(key uint32) (spinCommand, bool) {
	switch key {
	case common.KeyUp:
		return spinCommand{axis: scene.AxisVertical, dir: scene.DirectionNegative}, true
	case common.KeyDown:
		return spinCommand{axis: scene.AxisVertical, dir: scene.DirectionPositive}, true
	case common.KeyLeft:
		return spinCommand{axis: scene.AxisHorizontal, dir: scene.DirectionNegative}, true
	case common.KeyRight:
		return spinCommand{axis: scene.AxisHorizontal, dir: scene.DirectionPositive}, true
	default:
		return spinCommand{}, false
	}
}

func (e *engine) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		e.logger.Debug("ignoring empty framebuffer size", "width", width, "height", height)
		return nil
	}
	e.scene.RecomputeProjection(width, height)
	if err := e.renderer.Resize(width, height); err != nil {
		return fmt.Errorf("resize %dx%d: %w", width, height, err)
	}
	e.logger.Debug("framebuffer resized", "width", width, "height", height)
	return nil
}

// render advances the scene by the time since the previous render and draws it.
func (e *engine) render() error {
	now := e.now()
	gameTimeMs := now.Sub(e.start).Milliseconds()
	frameMs := float32(now.Sub(e.lastRender)) / float32(time.Millisecond)
	e.lastRender = now

	e.scene.Update(frameMs)
	if err := e.renderer.RenderFrame(e.scene); err != nil {
		return fmt.Errorf("render frame %d: %w", e.frames, err)
	}
	e.frames++

	if r, ok := e.profiler.Tick(gameTimeMs); ok && e.titleSetter != nil {
		e.titleSetter.SetTitle(fmt.Sprintf("%s | %.1f FPS", e.baseTitle, r.FPS))
	}
	return nil
}
