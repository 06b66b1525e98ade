package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultFov is the vertical field of view in radians (60 degrees).
	DefaultFov = float32(60.0 * math.Pi / 180.0)

	// DefaultNear is the near clipping plane distance.
	DefaultNear = float32(0.1)

	// DefaultFar is the far clipping plane distance.
	DefaultFar = float32(1000.0)

	// DefaultReferenceAspect is the 4:3 aspect the virtual viewport is normalised against.
	DefaultReferenceAspect = float32(4.0 / 3.0)

	// DefaultVirtualWidth is the virtual viewport width used when the window is wider than the reference aspect.
	DefaultVirtualWidth = float32(8.0)

	// DefaultVirtualHeight is the virtual viewport height used when the window is not wider than the reference aspect.
	DefaultVirtualHeight = float32(6.0)
)

type cameraImpl struct {
	fov             float32
	near            float32
	far             float32
	referenceAspect float32
	anchorWidth     float32
	anchorHeight    float32

	width, height int

	virtualWidth, virtualHeight float32
	projectionMatrix            mgl32.Mat4
}

// Camera holds the perspective settings of the scene and derives the projection matrix
// from the window size through an aspect-normalised virtual viewport. Geometry keeps its
// proportions whatever the window shape: wide windows are letterboxed on a fixed virtual
// width, tall or 4:3 windows are pillarboxed on a fixed virtual height.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ReferenceAspect returns the aspect ratio the virtual viewport is anchored against.
	//
	// Returns:
	//   - float32: the reference aspect ratio (width / height)
	ReferenceAspect() float32

	// Size returns the window size in pixels the projection was last computed for.
	//
	// Returns:
	//   - width, height: size in pixels
	Size() (width, height int)

	// VirtualViewport returns the aspect-normalised viewport size used for the projection.
	//
	// Returns:
	//   - width, height: virtual viewport dimensions
	VirtualViewport() (width, height float32)

	// ProjectionMatrix returns the current projection matrix (column-major, OpenGL clip convention).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// Resize recomputes the virtual viewport and projection for a new window size.
	// Non-positive sizes (a minimised window) are ignored and leave the projection untouched.
	//
	// Parameters:
	//   - width: window width in pixels
	//   - height: window height in pixels
	//
	// Returns:
	//   - bool: true if the projection was recomputed
	Resize(width, height int) bool
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with a 60 degree field of view, 0.1/1000 clip planes and a 4:3
// reference aspect, sized for a 1280x720 window unless overridden by options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera with its projection already computed
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		fov:             DefaultFov,
		near:            DefaultNear,
		far:             DefaultFar,
		referenceAspect: DefaultReferenceAspect,
		anchorWidth:     DefaultVirtualWidth,
		anchorHeight:    DefaultVirtualHeight,
		width:           1280,
		height:          720,
	}
	for _, option := range options {
		option(c)
	}
	c.updateProjection()
	return c
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ReferenceAspect() float32 {
	return c.referenceAspect
}

func (c *cameraImpl) Size() (width, height int) {
	return c.width, c.height
}

func (c *cameraImpl) VirtualViewport() (width, height float32) {
	return c.virtualWidth, c.virtualHeight
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.width = width
	c.height = height
	c.updateProjection()
	return true
}

// updateProjection recomputes the virtual viewport from the stored window size and rebuilds
// the projection matrix from it.
func (c *cameraImpl) updateProjection() {
	if c.width <= 0 || c.height <= 0 {
		c.projectionMatrix = mgl32.Ident4()
		return
	}
	c.virtualWidth, c.virtualHeight = virtualViewport(c.width, c.height, c.referenceAspect, c.anchorWidth, c.anchorHeight)
	c.projectionMatrix = PerspectiveFov(c.fov, c.virtualWidth, c.virtualHeight, c.near, c.far)
}
