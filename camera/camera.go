package camera

import "github.com/go-gl/mathgl/mgl64"

// Startup defaults for a fresh camera.
var (
	DefaultPosition = mgl64.Vec3{0, 1, -5}
	DefaultSpeed    = 0.1
)

// State is the camera record pushed to the shader every frame. Only the motion
// package mutates it.
type State struct {
	Position mgl64.Vec3
	// yaw, pitch, roll in degrees. Roll is reserved and always 0.
	Orientation mgl64.Vec3
	// distance travelled per frame along the current heading; may go negative
	Speed float64
}

// Default returns the camera every session starts with.
func Default() State {
	return State{
		Position: DefaultPosition,
		Speed:    DefaultSpeed,
	}
}

func (s State) Yaw() float64   { return s.Orientation[0] }
func (s State) Pitch() float64 { return s.Orientation[1] }
