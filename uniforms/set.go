package uniforms

import "github.com/richinsley/goraymarch/camera"

// Names of the uniforms every frame provides. Shaders may declare any subset.
const (
	NameTexture        = "tex"
	NameTime           = "time"
	NameResolution     = "resolution"
	NameRayOrigin      = "ro"
	NameCameraRotation = "CameraRotation"
	NameList           = "list"
)

// TextureUnit is the unit the surface texture is bound to.
const TextureUnit = 0

const listLen = 9

// Uniform is a named value.
type Uniform struct {
	Name  string
	Value Value
}

// Set is the ordered collection pushed to the program for one frame.
type Set []Uniform

// Lookup returns the value stored under name.
func (s Set) Lookup(name string) (Value, bool) {
	for _, u := range s {
		if u.Name == name {
			return u.Value, true
		}
	}
	return Value{}, false
}

// List is the fixed synthetic payload for the list uniform: (i, i+1, i+2) for
// i in 0..8. It does not depend on the camera.
func List() [][3]int32 {
	out := make([][3]int32, listLen)
	for i := range out {
		x := int32(i)
		out[i] = [3]int32{x, x + 1, x + 2}
	}
	return out
}

// Build assembles the uniforms for one frame from the camera and the frame
// counter and viewport size.
func Build(cam camera.State, frame int64, width, height int) Set {
	return Set{
		{NameTexture, Int(TextureUnit)},
		{NameTime, Int(frame)},
		{NameResolution, Vector2(float64(width), float64(height))},
		{NameRayOrigin, Vector3(cam.Position)},
		{NameCameraRotation, Vector3(cam.Orientation)},
		{NameList, IntTriples(List())},
	}
}
