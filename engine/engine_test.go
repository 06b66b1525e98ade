package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/dig/common"
	"github.com/Carmen-Shannon/dig/engine/camera"
	"github.com/Carmen-Shannon/dig/engine/input"
	"github.com/Carmen-Shannon/dig/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeSource replays one scripted batch of events per call and reports a close
// event once the script runs out.
type fakeSource struct {
	script [][]input.Event
	calls  int
	polls  int
	waits  []time.Duration

	// onCall observes the loop between ticks; call is the zero-based call index.
	onCall func(call int)
}

func (f *fakeSource) PollEvents() []input.Event {
	f.polls++
	return f.next()
}

func (f *fakeSource) WaitEvents(timeout time.Duration) []input.Event {
	f.waits = append(f.waits, timeout)
	return f.next()
}

func (f *fakeSource) next() []input.Event {
	call := f.calls
	f.calls++
	if f.onCall != nil {
		f.onCall(call)
	}
	if call < len(f.script) {
		return f.script[call]
	}
	return []input.Event{input.CloseEvent()}
}

type fakeRenderer struct {
	frames      int
	projections []mgl32.Mat4
	resizes     [][2]int
	failAt      int
	err         error
	resizeErr   error
}

func (f *fakeRenderer) RenderFrame(s scene.Scene) error {
	f.frames++
	f.projections = append(f.projections, s.ProjectionMatrix())
	if f.err != nil && f.frames == f.failAt {
		return f.err
	}
	return nil
}

func (f *fakeRenderer) Resize(width, height int) error {
	f.resizes = append(f.resizes, [2]int{width, height})
	return f.resizeErr
}

// fakeClock advances by step on every reading.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

type fakeTitle struct {
	titles []string
}

func (f *fakeTitle) SetTitle(title string) {
	f.titles = append(f.titles, title)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// idle returns n empty event batches.
func idle(n int) [][]input.Event {
	return make([][]input.Event, n)
}

func newTestEngine(src EventSource, r FrameRenderer, s scene.Scene, options ...EngineBuilderOption) Engine {
	clock := &fakeClock{t: time.Unix(0, 0), step: 16 * time.Millisecond}
	base := []EngineBuilderOption{
		WithEventSource(src),
		WithFrameRenderer(r),
		WithScene(s),
		WithLogger(discardLogger()),
		WithClock(clock.now),
	}
	return NewEngine(append(base, options...)...)
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestRunRequiresWiring(t *testing.T) {
	s := scene.NewScene("test")
	tests := []struct {
		name    string
		options []EngineBuilderOption
		want    error
	}{
		{"no scene", nil, ErrNoScene},
		{"no event source", []EngineBuilderOption{WithScene(s)}, ErrNoEventSource},
		{"no renderer", []EngineBuilderOption{WithScene(s), WithEventSource(&fakeSource{})}, ErrNoFrameRenderer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(append(tt.options, WithLogger(discardLogger()))...)
			if err := e.Run(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCloseEventStopsLoop(t *testing.T) {
	src := &fakeSource{script: [][]input.Event{{input.CloseEvent()}}}
	r := &fakeRenderer{}
	e := newTestEngine(src, r, scene.NewScene("test"))

	if e.State() != StateRunning {
		t.Fatalf("initial State() = %v, want %v", e.State(), StateRunning)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if e.State() != StateClosing {
		t.Errorf("State() = %v, want %v", e.State(), StateClosing)
	}
	if r.frames != 0 {
		t.Errorf("rendered %d frames after close, want 0", r.frames)
	}
	if src.calls != 1 {
		t.Errorf("event source called %d times, want 1", src.calls)
	}
}

func TestEscapeClosesOnPressOnly(t *testing.T) {
	tests := []struct {
		name       string
		action     input.Action
		wantFrames int
	}{
		{"press", input.ActionPress, 0},
		{"repeat", input.ActionRepeat, 1},
		{"release", input.ActionRelease, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{script: [][]input.Event{{input.KeyEvent(common.KeyEsc, tt.action)}}}
			r := &fakeRenderer{}
			e := newTestEngine(src, r, scene.NewScene("test"))

			if err := e.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if r.frames != tt.wantFrames {
				t.Errorf("rendered %d frames, want %d", r.frames, tt.wantFrames)
			}
		})
	}
}

func TestEscapeStopsEventDrain(t *testing.T) {
	src := &fakeSource{script: [][]input.Event{{
		input.KeyEvent(common.KeyEsc, input.ActionPress),
		input.KeyEvent(common.KeyRight, input.ActionPress),
	}}}
	s := scene.NewScene("test")
	e := newTestEngine(src, &fakeRenderer{}, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.Spin(scene.AxisHorizontal, scene.DirectionPositive) {
		t.Error("key after Escape was applied")
	}
}

func TestArrowKeyMapping(t *testing.T) {
	tests := []struct {
		key  uint32
		axis scene.Axis
		dir  scene.Direction
	}{
		{common.KeyUp, scene.AxisVertical, scene.DirectionNegative},
		{common.KeyDown, scene.AxisVertical, scene.DirectionPositive},
		{common.KeyLeft, scene.AxisHorizontal, scene.DirectionNegative},
		{common.KeyRight, scene.AxisHorizontal, scene.DirectionPositive},
	}

	for _, tt := range tests {
		cmd, ok := spinCommandFor(tt.key)
		if !ok {
			t.Errorf("key %d not mapped", tt.key)
			continue
		}
		if cmd.axis != tt.axis || cmd.dir != tt.dir {
			t.Errorf("key %d mapped to (%v, %v), want (%v, %v)", tt.key, cmd.axis, cmd.dir, tt.axis, tt.dir)
		}
	}

	for _, key := range []uint32{common.KeySpace, common.KeyQ, common.KeyEsc} {
		if _, ok := spinCommandFor(key); ok {
			t.Errorf("key %d mapped to a spin command", key)
		}
	}
}

func TestSpinCommandUsesItsOwnTick(t *testing.T) {
	script := append([][]input.Event{{input.KeyEvent(common.KeyRight, input.ActionPress)}}, idle(2)...)
	src := &fakeSource{script: script}
	r := &fakeRenderer{}
	s := scene.NewScene("test")
	e := newTestEngine(src, r, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.frames != 2 {
		t.Fatalf("rendered %d frames, want 2", r.frames)
	}
	if e.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", e.Frames())
	}

	// two 16 ms frames at 180 degrees per second
	x, y := s.Angles()
	if want := float32(math.Pi) * 0.032; !approx(y, want) {
		t.Errorf("y angle = %v, want %v", y, want)
	}
	if x != 0 {
		t.Errorf("x angle = %v, want 0", x)
	}
}

func TestSpinCommandsAppliedLastInFirstOut(t *testing.T) {
	s := scene.NewScene("test")
	var observed [][2]bool
	src := &fakeSource{
		script: [][]input.Event{
			{
				input.KeyEvent(common.KeyUp, input.ActionPress),
				input.KeyEvent(common.KeyDown, input.ActionPress),
			},
			nil,
		},
		onCall: func(call int) {
			observed = append(observed, [2]bool{
				s.Spin(scene.AxisVertical, scene.DirectionNegative),
				s.Spin(scene.AxisVertical, scene.DirectionPositive),
			})
		},
	}
	r := &fakeRenderer{}
	e := newTestEngine(src, r, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := [][2]bool{
		{false, false}, // before any tick
		{false, true},  // Down was queued last and applied first
		{true, true},   // Up applied on the following tick
	}
	for i, w := range want {
		if i >= len(observed) {
			t.Fatalf("observed %d calls, want at least %d", len(observed), len(want))
		}
		if observed[i] != w {
			t.Errorf("call %d (up, down) = %v, want %v", i, observed[i], w)
		}
	}
	if r.frames != 0 {
		t.Errorf("rendered %d frames while commands were pending, want 0", r.frames)
	}
	if _, v := s.NetSpin(); v != 0 {
		t.Errorf("net vertical spin = %v, want 0", v)
	}
}

func TestRepeatEventsIgnored(t *testing.T) {
	src := &fakeSource{script: [][]input.Event{
		{
			input.KeyEvent(common.KeyRight, input.ActionPress),
			input.KeyEvent(common.KeyRight, input.ActionRepeat),
			input.KeyEvent(common.KeyRight, input.ActionRepeat),
		},
		nil,
	}}
	r := &fakeRenderer{}
	e := newTestEngine(src, r, scene.NewScene("test"))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// one tick for the press, one render
	if r.frames != 1 {
		t.Errorf("rendered %d frames, want 1", r.frames)
	}
}

func TestReleaseStopsSpin(t *testing.T) {
	src := &fakeSource{script: [][]input.Event{
		{input.KeyEvent(common.KeyRight, input.ActionPress)},
		nil,
		{input.KeyEvent(common.KeyRight, input.ActionRelease)},
		nil,
		nil,
	}}
	r := &fakeRenderer{}
	s := scene.NewScene("test")
	e := newTestEngine(src, r, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.frames != 3 {
		t.Fatalf("rendered %d frames, want 3", r.frames)
	}
	if s.Spin(scene.AxisHorizontal, scene.DirectionPositive) {
		t.Error("spin flag still set after release")
	}
	// only the first render happened while the key was held
	if _, y := s.Angles(); !approx(y, float32(math.Pi)*0.016) {
		t.Errorf("y angle = %v, want %v", y, float32(math.Pi)*0.016)
	}
}

func TestUnknownKeysIgnored(t *testing.T) {
	src := &fakeSource{script: [][]input.Event{
		{input.KeyEvent(common.KeySpace, input.ActionPress), input.KeyEvent(common.KeyQ, input.ActionRelease)},
	}}
	r := &fakeRenderer{}
	s := scene.NewScene("test")
	e := newTestEngine(src, r, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.frames != 1 {
		t.Errorf("rendered %d frames, want 1", r.frames)
	}
	if h, v := s.NetSpin(); h != 0 || v != 0 {
		t.Errorf("NetSpin() = (%v, %v), want (0, 0)", h, v)
	}
}

func TestResizeRecomputesProjectionBeforeRender(t *testing.T) {
	src := &fakeSource{script: [][]input.Event{{input.ResizeEvent(800, 600)}}}
	r := &fakeRenderer{}
	e := newTestEngine(src, r, scene.NewScene("test"))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{800, 600} {
		t.Fatalf("renderer resizes = %v, want [[800 600]]", r.resizes)
	}
	if r.frames != 1 {
		t.Fatalf("rendered %d frames, want 1", r.frames)
	}

	want := camera.PerspectiveFov(camera.DefaultFov, 8, 6, camera.DefaultNear, camera.DefaultFar)
	if !r.projections[0].ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("projection at render = %v, want %v", r.projections[0], want)
	}
}

func TestEmptyResizeIgnored(t *testing.T) {
	s := scene.NewScene("test")
	before := s.ProjectionMatrix()
	src := &fakeSource{script: [][]input.Event{{input.ResizeEvent(0, 0)}}}
	r := &fakeRenderer{}
	e := newTestEngine(src, r, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(r.resizes) != 0 {
		t.Errorf("renderer resizes = %v, want none", r.resizes)
	}
	if s.ProjectionMatrix() != before {
		t.Error("projection changed on an empty framebuffer size")
	}
}

func TestRenderErrorStopsLoop(t *testing.T) {
	errLost := errors.New("surface lost")
	src := &fakeSource{script: idle(10)}
	r := &fakeRenderer{failAt: 3, err: errLost}
	e := newTestEngine(src, r, scene.NewScene("test"))

	err := e.Run(context.Background())
	if !errors.Is(err, errLost) {
		t.Fatalf("Run() error = %v, want %v", err, errLost)
	}
	if r.frames != 3 {
		t.Errorf("rendered %d frames, want 3", r.frames)
	}
	if e.State() != StateClosing {
		t.Errorf("State() = %v, want %v", e.State(), StateClosing)
	}
	if src.calls != 3 {
		t.Errorf("event source called %d times after failure, want 3", src.calls)
	}
}

func TestLoopModes(t *testing.T) {
	tests := []struct {
		name         string
		options      []EngineBuilderOption
		wantPolls    int
		wantWaits    int
		wantWait     time.Duration
		wantInterval int64
	}{
		{"polling default", nil, 3, 0, 0, DefaultPollingFPSInterval},
		{"event driven", []EngineBuilderOption{WithLoopMode(LoopModeEventDriven), WithFrameInterval(5 * time.Millisecond)}, 0, 3, 5 * time.Millisecond, DefaultEventDrivenFPSInterval},
		{"fps override", []EngineBuilderOption{WithLoopMode(LoopModeEventDriven), WithFPSInterval(250)}, 0, 3, DefaultFrameInterval, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{script: idle(2)}
			e := newTestEngine(src, &fakeRenderer{}, scene.NewScene("test"), tt.options...)

			if err := e.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if src.polls != tt.wantPolls {
				t.Errorf("polls = %d, want %d", src.polls, tt.wantPolls)
			}
			if len(src.waits) != tt.wantWaits {
				t.Errorf("waits = %d, want %d", len(src.waits), tt.wantWaits)
			}
			for _, w := range src.waits {
				if w != tt.wantWait {
					t.Errorf("wait timeout = %v, want %v", w, tt.wantWait)
				}
			}
			if got := e.Profiler().Interval(); got != tt.wantInterval {
				t.Errorf("profiler interval = %d, want %d", got, tt.wantInterval)
			}
		})
	}
}

func TestEventDrivenPollsWhileCommandsQueued(t *testing.T) {
	src := &fakeSource{script: [][]input.Event{
		{
			input.KeyEvent(common.KeyUp, input.ActionPress),
			input.KeyEvent(common.KeyLeft, input.ActionPress),
		},
		nil,
		nil,
		nil,
	}}
	r := &fakeRenderer{}
	e := newTestEngine(src, r, scene.NewScene("test"), WithLoopMode(LoopModeEventDriven))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// wait (two presses), poll (one still queued), wait, wait, wait (close)
	if src.polls != 1 {
		t.Errorf("polls = %d, want 1", src.polls)
	}
	if len(src.waits) != 4 {
		t.Errorf("waits = %d, want 4", len(src.waits))
	}
	if r.frames != 2 {
		t.Errorf("rendered %d frames, want 2", r.frames)
	}
}

func TestResizeErrorStopsLoop(t *testing.T) {
	errAttach := errors.New("create depth texture")
	src := &fakeSource{script: append([][]input.Event{{input.ResizeEvent(800, 600)}}, idle(5)...)}
	r := &fakeRenderer{resizeErr: errAttach}
	e := newTestEngine(src, r, scene.NewScene("test"))

	err := e.Run(context.Background())
	if !errors.Is(err, errAttach) {
		t.Fatalf("Run() error = %v, want %v", err, errAttach)
	}
	if r.frames != 0 {
		t.Errorf("rendered %d frames after a failed resize, want 0", r.frames)
	}
	if src.calls != 1 {
		t.Errorf("event source called %d times after failure, want 1", src.calls)
	}
	if e.State() != StateClosing {
		t.Errorf("State() = %v, want %v", e.State(), StateClosing)
	}
}

func TestQuitBeforeRun(t *testing.T) {
	src := &fakeSource{}
	e := newTestEngine(src, &fakeRenderer{}, scene.NewScene("test"))
	e.Quit()
	e.Quit()

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if src.calls != 0 {
		t.Errorf("event source called %d times, want 0", src.calls)
	}
}

func TestQuitFromRenderer(t *testing.T) {
	src := &fakeSource{script: idle(100)}
	var e Engine
	r := &quitRenderer{after: 4, quit: func() { e.Quit() }}
	e = newTestEngine(src, r, scene.NewScene("test"))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.frames != 4 {
		t.Errorf("rendered %d frames, want 4", r.frames)
	}
}

type quitRenderer struct {
	frames int
	after  int
	quit   func()
}

func (q *quitRenderer) RenderFrame(scene.Scene) error {
	q.frames++
	if q.frames == q.after {
		q.quit()
	}
	return nil
}

func (q *quitRenderer) Resize(int, int) error { return nil }

func TestContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{script: idle(5)}
	e := newTestEngine(src, &fakeRenderer{}, scene.NewScene("test"))

	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if src.calls != 0 {
		t.Errorf("event source called %d times, want 0", src.calls)
	}
	if e.State() != StateClosing {
		t.Errorf("State() = %v, want %v", e.State(), StateClosing)
	}
}

func TestTitleFPS(t *testing.T) {
	title := &fakeTitle{}
	src := &fakeSource{script: idle(10)}
	e := newTestEngine(src, &fakeRenderer{}, scene.NewScene("test"),
		WithFPSInterval(100),
		WithTitleFPS(title, "Dig"),
	)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// the 7th frame lands at 112 ms of game time: 7 frames in 112 ms
	if len(title.titles) != 1 {
		t.Fatalf("titles = %v, want one update", title.titles)
	}
	if want := "Dig | 62.5 FPS"; title.titles[0] != want {
		t.Errorf("title = %q, want %q", title.titles[0], want)
	}
}

func TestParseLoopMode(t *testing.T) {
	tests := []struct {
		in      string
		want    LoopMode
		wantErr bool
	}{
		{"polling", LoopModePolling, false},
		{"poll", LoopModePolling, false},
		{"event", LoopModeEventDriven, false},
		{"event-driven", LoopModeEventDriven, false},
		{"vsync", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLoopMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLoopMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLoopMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in && tt.in != "poll" && tt.in != "event-driven" {
				t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
			}
		})
	}
}
