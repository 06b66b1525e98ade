package camera

import "github.com/go-gl/mathgl/mgl32"

// VirtualViewport computes the default aspect-normalised viewport for a window size.
// The reference aspect is 4:3. When the window is strictly wider than that, the width is
// fixed at 8 and the height derived from the window aspect; otherwise the height is fixed
// at 6 and the width derived. An exact 4:3 window therefore yields 8x6 through the
// height-anchored branch.
//
// Parameters:
//   - width: window width in pixels (must be > 0)
//   - height: window height in pixels (must be > 0)
//
// Returns:
//   - vw, vh: the virtual viewport width and height
func VirtualViewport(width, height int) (vw, vh float32) {
	return virtualViewport(width, height, DefaultReferenceAspect, DefaultVirtualWidth, DefaultVirtualHeight)
}

func virtualViewport(width, height int, reference, anchorWidth, anchorHeight float32) (vw, vh float32) {
	aspect := float32(width) / float32(height)
	if reference < aspect {
		vw = anchorWidth
		vh = vw / aspect
		return vw, vh
	}
	vh = anchorHeight
	vw = vh * aspect
	return vw, vh
}

// PerspectiveFov builds a right-handed perspective projection from a vertical field of
// view and a viewport size. Only the ratio of width to height matters, so this is the
// same matrix mgl32.Perspective produces for aspect = width / height.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - width, height: viewport dimensions (any unit)
//   - near, far: clipping plane distances
//
// Returns:
//   - mgl32.Mat4: the projection matrix (OpenGL clip convention, z in [-w, w])
func PerspectiveFov(fov, width, height, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(fov, width/height, near, far)
}
