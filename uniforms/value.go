package uniforms

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind is the host side shape of a uniform value.
type Kind int

const (
	Scalar Kind = iota
	Vec2
	Vec3
	IVec3Array
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case IVec3Array:
		return "ivec3[]"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is one uniform payload. Only the fields matching Kind are meaningful.
type Value struct {
	Kind   Kind
	Scalar float64
	Vec    mgl64.Vec3
	Ints   [][3]int32
}

func Int(v int64) Value     { return Value{Kind: Scalar, Scalar: float64(v)} }
func Float(v float64) Value { return Value{Kind: Scalar, Scalar: v} }

func Vector2(x, y float64) Value {
	return Value{Kind: Vec2, Vec: mgl64.Vec3{x, y, 0}}
}

func Vector3(v mgl64.Vec3) Value {
	return Value{Kind: Vec3, Vec: v}
}

func IntTriples(list [][3]int32) Value {
	return Value{Kind: IVec3Array, Ints: list}
}

// Len is the number of array elements the value carries. Non-array values have
// length 1.
func (v Value) Len() int {
	if v.Kind == IVec3Array {
		return len(v.Ints)
	}
	return 1
}

// Flat returns the IVec3Array payload as a contiguous slice, the layout
// glUniform3iv expects.
func (v Value) Flat() []int32 {
	out := make([]int32, 0, len(v.Ints)*3)
	for _, t := range v.Ints {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// FlatFloat is Flat converted for a vec3 array declaration.
func (v Value) FlatFloat() []float32 {
	out := make([]float32, 0, len(v.Ints)*3)
	for _, t := range v.Ints {
		out = append(out, float32(t[0]), float32(t[1]), float32(t[2]))
	}
	return out
}
