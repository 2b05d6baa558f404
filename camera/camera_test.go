package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefault(t *testing.T) {
	s := Default()
	if !s.Position.ApproxEqual(mgl64.Vec3{0, 1, -5}) {
		t.Fatalf("position = %v, want (0, 1, -5)", s.Position)
	}
	if s.Orientation != (mgl64.Vec3{}) {
		t.Fatalf("orientation = %v, want zero", s.Orientation)
	}
	if s.Speed != 0.1 {
		t.Fatalf("speed = %v, want 0.1", s.Speed)
	}
}

func TestDefaultIsACopy(t *testing.T) {
	a := Default()
	a.Position[0] = 42
	if b := Default(); b.Position[0] != 0 {
		t.Fatalf("mutating one default leaked into the next: %v", b.Position)
	}
}
