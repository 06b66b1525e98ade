package camera

// CameraBuilderOption is a functional option for configuring a Camera via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithReferenceAspect sets the aspect ratio and the virtual anchor sizes of the letterbox policy.
// The anchors are usually chosen so that anchorWidth / anchorHeight equals the reference aspect.
//
// Parameters:
//   - aspect: reference aspect ratio (width / height)
//   - anchorWidth: virtual width used for windows wider than the reference
//   - anchorHeight: virtual height used for every other window
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithReferenceAspect(aspect, anchorWidth, anchorHeight float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect <= 0 || anchorWidth <= 0 || anchorHeight <= 0 {
			return
		}
		c.referenceAspect = aspect
		c.anchorWidth = anchorWidth
		c.anchorHeight = anchorHeight
	}
}

// WithSize sets the initial window size the projection is computed for.
//
// Parameters:
//   - width: window width in pixels
//   - height: window height in pixels
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithSize(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width = width
		c.height = height
	}
}
