package window

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/dig/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// DefaultTitle is the title of a window built without WithTitle.
	DefaultTitle = "Desperate: Dig"

	// DefaultWidth is the initial client width in screen coordinates.
	DefaultWidth = 1280

	// DefaultHeight is the initial client height in screen coordinates.
	DefaultHeight = 720

	// NoLimit leaves a size limit unconstrained.
	NoLimit = -1
)

// Window provides the platform window, its WebGPU surface descriptor and the queue of input events.
// Every method must be called from the thread that created the window.
type Window interface {
	// PollEvents processes pending platform events without blocking and returns them in arrival order.
	//
	// Returns:
	//   - []input.Event: the events reported since the previous call
	PollEvents() []input.Event

	// WaitEvents blocks until a platform event arrives or timeout elapses, then returns every pending event.
	//
	// Parameters:
	//   - timeout: the longest time to block
	//
	// Returns:
	//   - []input.Event: the events reported since the previous call
	WaitEvents(timeout time.Duration) []input.Event

	// SetTitle replaces the text in the title bar.
	//
	// Parameters:
	//   - title: the new window title
	SetTitle(title string)

	// Title returns the current window title.
	Title() string

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true until the window is closed.
	IsRunning() bool

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never created or is already closed
	Close() error

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state and the pending event queue.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth and maxHeight bound interactive resizing; NoLimit disables a bound.
	maxWidth  int
	maxHeight int

	// minWidth and minHeight bound interactive resizing; NoLimit disables a bound.
	minWidth  int
	minHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// events collects input and window events from platform callbacks.
	events input.Queue
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
// The calling goroutine becomes the window's thread and is locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w, err := newEngineWindow(options...)
	if err != nil {
		return nil, err
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

// newEngineWindow applies the defaults and options and checks the resulting size limits.
func newEngineWindow(options ...WindowBuilderOption) (*engineWindow, error) {
	w := &engineWindow{
		title:     DefaultTitle,
		maxWidth:  NoLimit,
		maxHeight: NoLimit,
		minWidth:  320,
		minHeight: 240,
		width:     DefaultWidth,
		height:    DefaultHeight,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", w.width, w.height)
	}
	if w.maxWidth != NoLimit && w.minWidth != NoLimit && w.maxWidth < w.minWidth {
		return nil, fmt.Errorf("max width %d is below min width %d", w.maxWidth, w.minWidth)
	}
	if w.maxHeight != NoLimit && w.minHeight != NoLimit && w.maxHeight < w.minHeight {
		return nil, fmt.Errorf("max height %d is below min height %d", w.maxHeight, w.minHeight)
	}
	return w, nil
}

func (w *engineWindow) PollEvents() []input.Event {
	platformPollEvents(w)
	return w.events.Drain()
}

func (w *engineWindow) WaitEvents(timeout time.Duration) []input.Event {
	platformWaitEvents(w, timeout)
	return w.events.Drain()
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
