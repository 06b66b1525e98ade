package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes so the window layer can forward them unchanged.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)

	KeySpace = 32 // Spacebar (ASCII)
	KeyQ     = 81 // Q key (ASCII)
)
