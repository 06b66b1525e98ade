package scene

import (
	"math"

	"github.com/Carmen-Shannon/dig/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis selects the rotation axis a spin intent drives.
type Axis int

const (
	// AxisHorizontal spins the cube around the Y axis (left/right keys).
	AxisHorizontal Axis = iota

	// AxisVertical spins the cube around the X axis (up/down keys).
	AxisVertical
)

// Direction selects the sign of a spin intent.
type Direction int

const (
	// DirectionNegative spins towards decreasing angles.
	DirectionNegative Direction = iota

	// DirectionPositive spins towards increasing angles.
	DirectionPositive
)

const (
	// twoPi is the wrap period of both rotation angles.
	twoPi = 2 * math.Pi

	// DefaultSpinVelocity is the rotation speed while a key is held, in radians per second (180 degrees).
	DefaultSpinVelocity = float32(math.Pi)

	// DefaultViewDistance is how far the camera sits from the cube along -Z.
	DefaultViewDistance = float32(5.0)
)

type sceneImpl struct {
	name string

	camera camera.Camera

	spinVelocity float32
	viewDistance float32

	// spin intent flags indexed by [Axis][Direction]
	spin [2][2]bool

	xAngle float32
	yAngle float32

	viewMatrix  mgl32.Mat4
	worldMatrix mgl32.Mat4
}

// Scene owns the rotation state of the demo: two angles, four spin-intent flags and the
// projection, view and world matrices derived from them. It is mutated only by the frame
// loop goroutine and therefore carries no locking.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the camera providing the projection.
	Camera() camera.Camera

	// SpinVelocity returns the rotation speed applied while a spin intent is held.
	//
	// Returns:
	//   - float32: radians per second
	SpinVelocity() float32

	// SetSpin sets or clears one of the four spin-intent flags.
	// Unknown axis or direction values are ignored.
	//
	// Parameters:
	//   - axis: the rotation axis
	//   - dir: the rotation direction
	//   - on: true while the matching key is held
	SetSpin(axis Axis, dir Direction, on bool)

	// Spin reports the current value of a spin-intent flag.
	//
	// Parameters:
	//   - axis: the rotation axis
	//   - dir: the rotation direction
	//
	// Returns:
	//   - bool: true if the flag is set
	Spin(axis Axis, dir Direction) bool

	// NetSpin returns the signed spin of both axes. Opposite flags on one axis cancel out.
	//
	// Returns:
	//   - horizontal, vertical: each -1, 0 or +1
	NetSpin() (horizontal, vertical float32)

	// Update advances both angles by the spin velocity times the elapsed time and the net
	// spin of their axis, wraps them by 2π with a sign-preserving remainder, then rebuilds
	// the view matrix as translate(0, 0, -d) * rotateX(x) * rotateY(y).
	//
	// Parameters:
	//   - elapsedMs: time since the previous update in milliseconds
	Update(elapsedMs float32)

	// RecomputeProjection rebuilds the projection for a new viewport size through the camera's
	// virtual viewport policy. Non-positive sizes leave the projection unchanged.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - bool: true if the projection was recomputed
	RecomputeProjection(width, height int) bool

	// Angles returns the current rotation angles.
	//
	// Returns:
	//   - x, y: rotation around X and Y in radians, each in (-2π, 2π)
	Angles() (x, y float32)

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() mgl32.Mat4

	// VirtualViewport returns the aspect-normalised viewport the projection was built from.
	//
	// Returns:
	//   - vw, vh: virtual width and height
	VirtualViewport() (vw, vh float32)

	// ViewMatrix returns the view matrix computed by the last Update.
	ViewMatrix() mgl32.Mat4

	// WorldMatrix returns the world matrix, which is always identity.
	WorldMatrix() mgl32.Mat4
}

var _ Scene = &sceneImpl{}

// NewScene creates a Scene with zero angles, no spin intent and a 180°/s spin velocity.
// The view matrix is computed immediately so a frame can be drawn before the first Update.
//
// Parameters:
//   - name: the scene's identifier, used in logs
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &sceneImpl{
		name:         name,
		spinVelocity: DefaultSpinVelocity,
		viewDistance: DefaultViewDistance,
		worldMatrix:  mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	s.updateView()
	return s
}

func (s *sceneImpl) Name() string {
	return s.name
}

func (s *sceneImpl) Camera() camera.Camera {
	return s.camera
}

func (s *sceneImpl) SpinVelocity() float32 {
	return s.spinVelocity
}

func (s *sceneImpl) SetSpin(axis Axis, dir Direction, on bool) {
	if !validSpin(axis, dir) {
		return
	}
	s.spin[axis][dir] = on
}

func (s *sceneImpl) Spin(axis Axis, dir Direction) bool {
	if !validSpin(axis, dir) {
		return false
	}
	return s.spin[axis][dir]
}

func (s *sceneImpl) NetSpin() (horizontal, vertical float32) {
	return s.net(AxisHorizontal), s.net(AxisVertical)
}

func (s *sceneImpl) Update(elapsedMs float32) {
	horizontal, vertical := s.NetSpin()
	seconds := elapsedMs / 1000

	s.xAngle = wrapAngle(s.xAngle + s.spinVelocity*vertical*seconds)
	s.yAngle = wrapAngle(s.yAngle + s.spinVelocity*horizontal*seconds)

	s.updateView()
}

func (s *sceneImpl) RecomputeProjection(width, height int) bool {
	return s.camera.Resize(width, height)
}

func (s *sceneImpl) Angles() (x, y float32) {
	return s.xAngle, s.yAngle
}

func (s *sceneImpl) ProjectionMatrix() mgl32.Mat4 {
	return s.camera.ProjectionMatrix()
}

func (s *sceneImpl) VirtualViewport() (vw, vh float32) {
	return s.camera.VirtualViewport()
}

func (s *sceneImpl) ViewMatrix() mgl32.Mat4 {
	return s.viewMatrix
}

func (s *sceneImpl) WorldMatrix() mgl32.Mat4 {
	return s.worldMatrix
}

// net returns +1, 0 or -1 for one axis.
func (s *sceneImpl) net(axis Axis) float32 {
	var n float32
	if s.spin[axis][DirectionNegative] {
		n--
	}
	if s.spin[axis][DirectionPositive] {
		n++
	}
	return n
}

// updateView rebuilds the view matrix from the current angles.
func (s *sceneImpl) updateView() {
	translate := mgl32.Translate3D(0, 0, -s.viewDistance)
	rotateX := mgl32.HomogRotate3DX(s.xAngle)
	rotateY := mgl32.HomogRotate3DY(s.yAngle)
	s.viewMatrix = translate.Mul4(rotateX).Mul4(rotateY)
}

// wrapAngle reduces an angle by 2π keeping the sign of the input, so negative angles stay
// in (-2π, 0].
func wrapAngle(a float32) float32 {
	return float32(math.Mod(float64(a), twoPi))
}

func validSpin(axis Axis, dir Direction) bool {
	return (axis == AxisHorizontal || axis == AxisVertical) &&
		(dir == DirectionNegative || dir == DirectionPositive)
}
