// Package motion advances the camera from sampled input: heading-relative
// translation and speed changes from the keyboard, absolute orientation from
// the pointer position.
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/richinsley/goraymarch/camera"
	"github.com/richinsley/goraymarch/inputs"
)

const (
	DefaultSpeedStep   = 0.001
	DefaultSensitivity = 1.0
)

// Controller holds the tuning knobs. It keeps no per-frame state; everything it
// changes lives in the camera.State passed to it.
type Controller struct {
	// SpeedStep is added to or removed from the camera speed per frame while a
	// speed key is held. Speed is not clamped and may go negative.
	SpeedStep float64
	// Sensitivity scales the pointer to rotation mapping.
	Sensitivity float64
}

func NewController(speedStep, sensitivity float64) *Controller {
	return &Controller{
		SpeedStep:   speedStep,
		Sensitivity: sensitivity,
	}
}

// Update applies one frame of motion: keyboard translation first, then the
// pointer driven orientation. A zero sized viewport leaves the orientation as is.
func (c *Controller) Update(s *camera.State, snap inputs.Snapshot, width, height int) {
	c.Translate(s, snap.Keys)
	if rot, ok := Rotation(snap.MouseX, snap.MouseY, width, height, c.Sensitivity); ok {
		s.Orientation = rot
	}
}

// Translate moves the camera along its yaw heading for every held key. Held keys
// add up; diagonals are not normalized.
func (c *Controller) Translate(s *camera.State, keys inputs.KeyState) {
	a := mgl64.DegToRad(s.Yaw())
	sinA, cosA := math.Sin(a), math.Cos(a)
	speed := s.Speed

	if keys.Pressed(inputs.KeyForward) {
		s.Position[2] += speed * cosA
		s.Position[0] += speed * sinA
	}
	if keys.Pressed(inputs.KeyBackward) {
		s.Position[2] += -speed * cosA
		s.Position[0] += -speed * sinA
	}
	if keys.Pressed(inputs.KeyLeft) {
		s.Position[2] += speed * sinA
		s.Position[0] += -speed * cosA
	}
	if keys.Pressed(inputs.KeyRight) {
		s.Position[2] += -speed * sinA
		s.Position[0] += speed * cosA
	}
	if keys.Pressed(inputs.KeyUp) {
		s.Position[1] += speed
	}
	if keys.Pressed(inputs.KeyDown) {
		s.Position[1] -= speed
	}

	if keys.Pressed(inputs.KeySpeedUp) {
		s.Speed += c.SpeedStep
	}
	if keys.Pressed(inputs.KeySpeedDown) {
		s.Speed -= c.SpeedStep
	}
}

// Rotation maps an absolute pointer position to (yaw, pitch, roll) in degrees.
// The viewport center maps to zero, the left and right edges to -180 and +180
// yaw, the top and bottom edges to -90 and +90 pitch, all scaled by sensitivity.
//
// ok is false when either viewport dimension is not positive; the result would
// not be finite.
func Rotation(mx, my float64, width, height int, sensitivity float64) (rot mgl64.Vec3, ok bool) {
	if width <= 0 || height <= 0 {
		return mgl64.Vec3{}, false
	}
	w, h := float64(width), float64(height)
	nx := (mx - w/2) / w
	ny := (my - h/2) / h
	return mgl64.Vec3{nx * 360 * sensitivity, ny * 180 * sensitivity, 0}, true
}
