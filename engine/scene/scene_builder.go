package scene

import "github.com/Carmen-Shannon/dig/engine/camera"

// SceneBuilderOption is a functional option for configuring a Scene via NewScene.
type SceneBuilderOption func(*sceneImpl)

// WithCamera sets the camera providing the projection matrix.
// When omitted the scene creates a default camera sized for 1280x720.
//
// Parameters:
//   - c: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(c camera.Camera) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.camera = c
	}
}

// WithSpinVelocity sets the rotation speed applied while a spin intent is held.
//
// Parameters:
//   - radiansPerSecond: the spin velocity
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSpinVelocity(radiansPerSecond float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.spinVelocity = radiansPerSecond
	}
}

// WithViewDistance sets how far the camera sits from the cube along the negative Z axis.
//
// Parameters:
//   - distance: the view distance (default 5)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViewDistance(distance float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.viewDistance = distance
	}
}
