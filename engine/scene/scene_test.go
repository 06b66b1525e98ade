package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/dig/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func expectedView(x, y float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -5).Mul4(mgl32.HomogRotate3DX(x)).Mul4(mgl32.HomogRotate3DY(y))
}

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene("test")
	if s.Name() != "test" {
		t.Errorf("Name() = %q, want %q", s.Name(), "test")
	}
	if s.SpinVelocity() != DefaultSpinVelocity {
		t.Errorf("SpinVelocity() = %v, want %v", s.SpinVelocity(), DefaultSpinVelocity)
	}
	if x, y := s.Angles(); x != 0 || y != 0 {
		t.Errorf("Angles() = (%v, %v), want (0, 0)", x, y)
	}
	if s.WorldMatrix() != mgl32.Ident4() {
		t.Errorf("WorldMatrix() = %v, want identity", s.WorldMatrix())
	}
	if !s.ViewMatrix().ApproxEqualThreshold(mgl32.Translate3D(0, 0, -5), eps) {
		t.Errorf("ViewMatrix() = %v, want translate(0, 0, -5)", s.ViewMatrix())
	}
	if s.Camera() == nil {
		t.Fatal("Camera() = nil")
	}
}

func TestSetSpin(t *testing.T) {
	s := NewScene("test")
	s.SetSpin(AxisHorizontal, DirectionPositive, true)
	s.SetSpin(AxisVertical, DirectionNegative, true)

	if !s.Spin(AxisHorizontal, DirectionPositive) || !s.Spin(AxisVertical, DirectionNegative) {
		t.Fatal("flags not set")
	}
	if s.Spin(AxisHorizontal, DirectionNegative) || s.Spin(AxisVertical, DirectionPositive) {
		t.Fatal("unrelated flags set")
	}
	if h, v := s.NetSpin(); h != 1 || v != -1 {
		t.Errorf("NetSpin() = (%v, %v), want (1, -1)", h, v)
	}

	s.SetSpin(AxisHorizontal, DirectionPositive, false)
	if s.Spin(AxisHorizontal, DirectionPositive) {
		t.Error("flag not cleared")
	}
}

func TestSetSpinIgnoresUnknownValues(t *testing.T) {
	s := NewScene("test")
	s.SetSpin(Axis(7), DirectionPositive, true)
	s.SetSpin(AxisVertical, Direction(-1), true)
	if h, v := s.NetSpin(); h != 0 || v != 0 {
		t.Errorf("NetSpin() = (%v, %v), want (0, 0)", h, v)
	}
	if s.Spin(Axis(7), DirectionPositive) {
		t.Error("Spin() reported an unknown axis as set")
	}
}

func TestOppositeFlagsCancel(t *testing.T) {
	s := NewScene("test")
	s.SetSpin(AxisHorizontal, DirectionNegative, true)
	s.SetSpin(AxisHorizontal, DirectionPositive, true)
	s.SetSpin(AxisVertical, DirectionNegative, true)
	s.SetSpin(AxisVertical, DirectionPositive, true)

	if h, v := s.NetSpin(); h != 0 || v != 0 {
		t.Fatalf("NetSpin() = (%v, %v), want (0, 0)", h, v)
	}
	s.Update(1234)
	if x, y := s.Angles(); x != 0 || y != 0 {
		t.Errorf("Angles() = (%v, %v), want (0, 0)", x, y)
	}
}

func TestUpdateIntegratesSpin(t *testing.T) {
	tests := []struct {
		name         string
		axis         Axis
		dir          Direction
		elapsedMs    float32
		wantX, wantY float32
	}{
		{"right for half a second", AxisHorizontal, DirectionPositive, 500, 0, math.Pi / 2},
		{"left for half a second", AxisHorizontal, DirectionNegative, 500, 0, -math.Pi / 2},
		{"down for a quarter second", AxisVertical, DirectionPositive, 250, math.Pi / 4, 0},
		{"up for a quarter second", AxisVertical, DirectionNegative, 250, -math.Pi / 4, 0},
		{"right wraps past a full turn", AxisHorizontal, DirectionPositive, 2500, 0, math.Pi / 2},
		{"left wraps and keeps its sign", AxisHorizontal, DirectionNegative, 2500, 0, -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene("test")
			s.SetSpin(tt.axis, tt.dir, true)
			s.Update(tt.elapsedMs)

			x, y := s.Angles()
			if !approx(x, tt.wantX) || !approx(y, tt.wantY) {
				t.Fatalf("Angles() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
			if !s.ViewMatrix().ApproxEqualThreshold(expectedView(x, y), eps) {
				t.Errorf("ViewMatrix() = %v, want %v", s.ViewMatrix(), expectedView(x, y))
			}
		})
	}
}

func TestUpdateZeroIsNoOpOnAngles(t *testing.T) {
	s := NewScene("test")
	s.SetSpin(AxisHorizontal, DirectionPositive, true)
	s.SetSpin(AxisVertical, DirectionNegative, true)
	s.Update(300)
	x0, y0 := s.Angles()
	view0 := s.ViewMatrix()

	s.Update(0)
	s.Update(0)
	x1, y1 := s.Angles()
	if x0 != x1 || y0 != y1 {
		t.Errorf("Update(0) moved angles from (%v, %v) to (%v, %v)", x0, y0, x1, y1)
	}
	if s.ViewMatrix() != view0 {
		t.Errorf("Update(0) produced a different view: %v vs %v", s.ViewMatrix(), view0)
	}
	if !s.ViewMatrix().ApproxEqualThreshold(expectedView(x1, y1), eps) {
		t.Errorf("ViewMatrix() does not match the current angles")
	}
}

func TestAnglesStayWithinWrapRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := NewScene("test", WithSpinVelocity(7.5))

	for i := range 10_000 {
		axis := Axis(rng.IntN(2))
		dir := Direction(rng.IntN(2))
		s.SetSpin(axis, dir, rng.IntN(2) == 0)

		s.Update(rng.Float32() * 5000)

		x, y := s.Angles()
		if math.Abs(float64(x)) >= twoPi || math.Abs(float64(y)) >= twoPi {
			t.Fatalf("step %d: Angles() = (%v, %v) outside (-2π, 2π)", i, x, y)
		}
	}
}

func TestWorldMatrixNeverChanges(t *testing.T) {
	s := NewScene("test")
	s.SetSpin(AxisHorizontal, DirectionPositive, true)
	for range 10 {
		s.Update(16)
	}
	s.RecomputeProjection(1920, 1080)
	if s.WorldMatrix() != mgl32.Ident4() {
		t.Errorf("WorldMatrix() = %v, want identity", s.WorldMatrix())
	}
}

func TestRecomputeProjection(t *testing.T) {
	s := NewScene("test", WithCamera(camera.NewCamera(camera.WithSize(1280, 720))))

	if !s.RecomputeProjection(800, 600) {
		t.Fatal("RecomputeProjection(800, 600) = false")
	}
	vw, vh := s.VirtualViewport()
	if vw != 8 || vh != 6 {
		t.Errorf("VirtualViewport() = (%v, %v), want (8, 6)", vw, vh)
	}
	want := mgl32.Perspective(camera.DefaultFov, 8.0/6.0, 0.1, 1000)
	if !s.ProjectionMatrix().ApproxEqualThreshold(want, eps) {
		t.Errorf("ProjectionMatrix() = %v, want %v", s.ProjectionMatrix(), want)
	}

	before := s.ProjectionMatrix()
	if s.RecomputeProjection(0, 0) {
		t.Error("RecomputeProjection(0, 0) = true")
	}
	if s.ProjectionMatrix() != before {
		t.Error("empty size changed the projection")
	}
}

func TestVirtualViewportFollowsWideWindow(t *testing.T) {
	s := NewScene("test")
	s.RecomputeProjection(1920, 1080)

	vw, vh := s.VirtualViewport()
	if !approx(vw, 8) || !approx(vh, 4.5) {
		t.Errorf("VirtualViewport() = (%v, %v), want (8, 4.5)", vw, vh)
	}
	cw, ch := s.Camera().VirtualViewport()
	if vw != cw || vh != ch {
		t.Errorf("scene viewport (%v, %v) differs from camera (%v, %v)", vw, vh, cw, ch)
	}
}

func TestProjectionOnlyChangesOnResize(t *testing.T) {
	s := NewScene("test")
	before := s.ProjectionMatrix()
	s.SetSpin(AxisVertical, DirectionPositive, true)
	s.Update(1000)
	if s.ProjectionMatrix() != before {
		t.Error("Update changed the projection")
	}
}

func TestWithViewDistance(t *testing.T) {
	s := NewScene("test", WithViewDistance(10))
	if !s.ViewMatrix().ApproxEqualThreshold(mgl32.Translate3D(0, 0, -10), eps) {
		t.Errorf("ViewMatrix() = %v, want translate(0, 0, -10)", s.ViewMatrix())
	}
}
