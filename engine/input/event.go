// Package input defines the platform-neutral window and keyboard events that flow from the
// window layer into the frame loop. Nothing here depends on GLFW so the loop can be driven
// by fakes in tests.
package input

import "fmt"

// EventType identifies the kind of an Event.
type EventType int

const (
	// EventKey is a keyboard key transition.
	EventKey EventType = iota

	// EventResize reports a new framebuffer size in pixels.
	EventResize

	// EventClose reports that the user asked the window to close.
	EventClose
)

// Action is the state transition carried by a key event.
type Action int

const (
	// ActionRelease is reported once when a held key is let go.
	ActionRelease Action = iota

	// ActionPress is reported once when a key goes down.
	ActionPress

	// ActionRepeat is reported by the platform while a key stays held down.
	ActionRepeat
)

func (a Action) String() string {
	switch a {
	case ActionRelease:
		return "release"
	case ActionPress:
		return "press"
	case ActionRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Event is a single input or window event. Only the fields relevant to Type are set.
type Event struct {
	Type EventType

	// Key is the virtual key code (see common.Key*) for EventKey.
	Key uint32
	// Action is the key transition for EventKey.
	Action Action

	// Width and Height are the new framebuffer size for EventResize.
	Width, Height int
}

// KeyEvent builds an EventKey event.
//
// Parameters:
//   - key: the virtual key code
//   - action: the key transition
//
// Returns:
//   - Event: the key event
func KeyEvent(key uint32, action Action) Event {
	return Event{Type: EventKey, Key: key, Action: action}
}

// ResizeEvent builds an EventResize event.
//
// Parameters:
//   - width: the new framebuffer width in pixels
//   - height: the new framebuffer height in pixels
//
// Returns:
//   - Event: the resize event
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

// CloseEvent builds an EventClose event.
func CloseEvent() Event {
	return Event{Type: EventClose}
}
