package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/goraymarch/camera"
	"github.com/richinsley/goraymarch/inputs"
)

const eps = 1e-9

// vecNear compares per component with an absolute tolerance; mgl64's relative
// threshold becomes eps*eps when one side is zero.
func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxFuncEqual(b, func(x, y float64) bool {
		return math.Abs(x-y) < eps
	})
}

func TestVecNearAcceptsRoundingAroundZero(t *testing.T) {
	got := mgl64.Vec3{1, 0, math.Cos(math.Pi / 2)}
	if !vecNear(got, mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("%v not near (1, 0, 0)", got)
	}
	if vecNear(got, mgl64.Vec3{1, 0, 1e-6}) {
		t.Fatal("tolerance too loose")
	}
}

func TestTranslateNoDirectionalKeys(t *testing.T) {
	cases := []struct {
		name string
		keys inputs.KeyState
	}{
		{"none", inputs.KeyState{}},
		{"speed_only", inputs.Press(inputs.KeySpeedUp)},
		{"escape", inputs.Press(inputs.KeyEscape)},
	}
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := camera.Default()
			s.Orientation = mgl64.Vec3{37, -12, 0}
			before := s.Position
			c.Translate(&s, tc.keys)
			if s.Position != before {
				t.Fatalf("position moved from %v to %v", before, s.Position)
			}
		})
	}
}

func TestTranslateForwardAtZeroYaw(t *testing.T) {
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	s := camera.Default()
	before := s.Position
	c.Translate(&s, inputs.Press(inputs.KeyForward))

	if got := s.Position[2] - before[2]; math.Abs(got-s.Speed) > eps {
		t.Fatalf("z delta = %v, want %v", got, s.Speed)
	}
	if s.Position[0] != before[0] {
		t.Fatalf("x changed: %v -> %v", before[0], s.Position[0])
	}
	if s.Position[1] != before[1] {
		t.Fatalf("y changed: %v -> %v", before[1], s.Position[1])
	}
}

func TestTranslateForwardBackwardNegate(t *testing.T) {
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	for _, yaw := range []float64{0, 12.5, 90, -135, 179.9, 720} {
		fwd := camera.State{Orientation: mgl64.Vec3{yaw, 0, 0}, Speed: 0.37}
		back := fwd
		c.Translate(&fwd, inputs.Press(inputs.KeyForward))
		c.Translate(&back, inputs.Press(inputs.KeyBackward))
		if fwd.Position != back.Position.Mul(-1) {
			t.Errorf("yaw %v: forward %v is not the negation of backward %v", yaw, fwd.Position, back.Position)
		}
	}
}

func TestTranslateStrafeNegate(t *testing.T) {
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	left := camera.State{Orientation: mgl64.Vec3{33, 0, 0}, Speed: 0.2}
	right := left
	c.Translate(&left, inputs.Press(inputs.KeyLeft))
	c.Translate(&right, inputs.Press(inputs.KeyRight))
	if left.Position != right.Position.Mul(-1) {
		t.Fatalf("left %v is not the negation of right %v", left.Position, right.Position)
	}
}

func TestTranslateHeading(t *testing.T) {
	cases := []struct {
		name string
		yaw  float64
		key  inputs.Key
		want mgl64.Vec3
	}{
		{"forward_yaw90", 90, inputs.KeyForward, mgl64.Vec3{1, 0, 0}},
		{"left_yaw0", 0, inputs.KeyLeft, mgl64.Vec3{-1, 0, 0}},
		{"right_yaw0", 0, inputs.KeyRight, mgl64.Vec3{1, 0, 0}},
		{"left_yaw90", 90, inputs.KeyLeft, mgl64.Vec3{0, 0, 1}},
		{"up", 45, inputs.KeyUp, mgl64.Vec3{0, 1, 0}},
		{"down", 45, inputs.KeyDown, mgl64.Vec3{0, -1, 0}},
	}
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := camera.State{Orientation: mgl64.Vec3{tc.yaw, 0, 0}, Speed: 1}
			c.Translate(&s, inputs.Press(tc.key))
			if !vecNear(s.Position, tc.want) {
				t.Fatalf("position = %v, want %v", s.Position, tc.want)
			}
		})
	}
}

func TestTranslateDiagonalNotNormalized(t *testing.T) {
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	s := camera.State{Speed: 1}
	c.Translate(&s, inputs.Press(inputs.KeyForward, inputs.KeyRight))
	if !vecNear(s.Position, mgl64.Vec3{1, 0, 1}) {
		t.Fatalf("position = %v, want (1, 0, 1)", s.Position)
	}
}

func TestTranslateNegativeSpeedReverses(t *testing.T) {
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	s := camera.State{Speed: -0.1}
	c.Translate(&s, inputs.Press(inputs.KeyForward))
	if !vecNear(s.Position, mgl64.Vec3{0, 0, -0.1}) {
		t.Fatalf("position = %v, want (0, 0, -0.1)", s.Position)
	}
}

func TestSpeedAdjustment(t *testing.T) {
	c := NewController(DefaultSpeedStep, DefaultSensitivity)
	s := camera.Default()
	for i := 0; i < 3; i++ {
		c.Translate(&s, inputs.Press(inputs.KeySpeedUp))
	}
	if math.Abs(s.Speed-0.103) > eps {
		t.Fatalf("speed = %v, want 0.103", s.Speed)
	}

	s.Speed = 0.0005
	c.Translate(&s, inputs.Press(inputs.KeySpeedDown))
	if math.Abs(s.Speed-(-0.0005)) > eps {
		t.Fatalf("speed = %v, want -0.0005 (no floor)", s.Speed)
	}
}

func TestSpeedChangeAppliesAfterTranslation(t *testing.T) {
	c := NewController(0.5, DefaultSensitivity)
	s := camera.State{Speed: 1}
	c.Translate(&s, inputs.Press(inputs.KeyForward, inputs.KeySpeedUp))
	if !vecNear(s.Position, mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("position = %v, want the old speed to be used", s.Position)
	}
	if s.Speed != 1.5 {
		t.Fatalf("speed = %v, want 1.5", s.Speed)
	}
}

func TestRotation(t *testing.T) {
	cases := []struct {
		name        string
		mx, my      float64
		w, h        int
		sensitivity float64
		want        mgl64.Vec3
	}{
		{"center", 960, 487, 1920, 974, 1, mgl64.Vec3{0, 0, 0}},
		{"right_edge", 1920, 487, 1920, 974, 1, mgl64.Vec3{180, 0, 0}},
		{"left_edge", 0, 487, 1920, 974, 1, mgl64.Vec3{-180, 0, 0}},
		{"top_edge", 960, 0, 1920, 974, 1, mgl64.Vec3{0, -90, 0}},
		{"bottom_edge", 960, 974, 1920, 974, 1, mgl64.Vec3{0, 90, 0}},
		{"right_edge_half_sens", 800, 300, 800, 600, 0.5, mgl64.Vec3{90, 0, 0}},
		{"left_edge_double_sens", 0, 300, 800, 600, 2, mgl64.Vec3{-360, 0, 0}},
		{"odd_width_right_edge", 1001, 50, 1001, 100, 1, mgl64.Vec3{180, 0, 0}},
		{"outside_window", 1200, 300, 800, 600, 1, mgl64.Vec3{360, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Rotation(tc.mx, tc.my, tc.w, tc.h, tc.sensitivity)
			if !ok {
				t.Fatal("rotation skipped for a valid viewport")
			}
			if !vecNear(got, tc.want) {
				t.Fatalf("Rotation = %v, want %v", got, tc.want)
			}
			if got[2] != 0 {
				t.Fatalf("roll = %v, want 0", got[2])
			}
		})
	}
}

func TestRotationIsPure(t *testing.T) {
	a, okA := Rotation(123.5, 456.25, 1280, 720, 1.3)
	b, okB := Rotation(123.5, 456.25, 1280, 720, 1.3)
	if a != b || okA != okB {
		t.Fatalf("identical inputs gave %v/%v and %v/%v", a, okA, b, okB)
	}
}

func TestRotationZeroViewport(t *testing.T) {
	for _, dims := range [][2]int{{0, 600}, {800, 0}, {0, 0}, {-5, 10}} {
		if rot, ok := Rotation(10, 10, dims[0], dims[1], 1); ok {
			t.Errorf("viewport %v: got %v, want skipped", dims, rot)
		}
	}
}

func TestUpdate(t *testing.T) {
	c := NewController(DefaultSpeedStep, DefaultSensitivity)

	t.Run("applies_rotation_after_translation", func(t *testing.T) {
		s := camera.State{Orientation: mgl64.Vec3{90, 0, 0}, Speed: 1}
		snap := inputs.Snapshot{Keys: inputs.Press(inputs.KeyForward), MouseX: 400, MouseY: 300}
		c.Update(&s, snap, 800, 600)
		// moved along the old 90 degree heading, then orientation reset by the centered pointer
		if !vecNear(s.Position, mgl64.Vec3{1, 0, 0}) {
			t.Fatalf("position = %v, want (1, 0, 0)", s.Position)
		}
		if !vecNear(s.Orientation, mgl64.Vec3{}) {
			t.Fatalf("orientation = %v, want zero", s.Orientation)
		}
	})

	t.Run("zero_viewport_keeps_orientation", func(t *testing.T) {
		s := camera.State{Orientation: mgl64.Vec3{45, 10, 0}, Speed: 1}
		c.Update(&s, inputs.Snapshot{MouseX: 3, MouseY: 4}, 0, 0)
		if s.Orientation != (mgl64.Vec3{45, 10, 0}) {
			t.Fatalf("orientation = %v, want unchanged", s.Orientation)
		}
		for i, v := range s.Orientation {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("orientation[%d] is not finite", i)
			}
		}
	})
}
