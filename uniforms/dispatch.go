package uniforms

import (
	"fmt"
	"log"
)

// GLSLType is the declared type of an active uniform, as reported by the linked
// program.
type GLSLType int

const (
	TypeOther GLSLType = iota
	TypeFloat
	TypeInt
	TypeUint
	TypeBool
	TypeVec2
	TypeIVec2
	TypeVec3
	TypeIVec3
	TypeSampler2D
)

func (t GLSLType) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeBool:
		return "bool"
	case TypeVec2:
		return "vec2"
	case TypeIVec2:
		return "ivec2"
	case TypeVec3:
		return "vec3"
	case TypeIVec3:
		return "ivec3"
	case TypeSampler2D:
		return "sampler2D"
	}
	return "other"
}

// Info describes an active uniform of a linked program.
type Info struct {
	Name     string
	Location int32
	Type     GLSLType
	// Size is the declared array length, 1 for non-arrays.
	Size int32
}

// Program is a render target that accepts named uniform values.
type Program interface {
	// Uniform reports the declaration of name. ok is false when the program
	// does not declare it or the compiler optimized it away.
	Uniform(name string) (info Info, ok bool)
	// Set uploads v. Callers only pass values Check accepted for info.
	Set(info Info, v Value)
}

// MismatchError reports a value whose shape does not fit the declaration.
type MismatchError struct {
	Name     string
	Kind     Kind
	Len      int
	Declared GLSLType
	Size     int32
}

func (e *MismatchError) Error() string {
	if e.Kind == IVec3Array {
		return fmt.Sprintf("uniform %q: cannot set %s of length %d on %s[%d]", e.Name, e.Kind, e.Len, e.Declared, e.Size)
	}
	return fmt.Sprintf("uniform %q: cannot set %s on %s", e.Name, e.Kind, e.Declared)
}

// Check validates v against a declaration.
func Check(info Info, v Value) error {
	ok := false
	switch v.Kind {
	case Scalar:
		switch info.Type {
		case TypeFloat, TypeInt, TypeUint, TypeBool, TypeSampler2D:
			ok = info.Size == 1
		}
	case Vec2:
		ok = (info.Type == TypeVec2 || info.Type == TypeIVec2) && info.Size == 1
	case Vec3:
		ok = (info.Type == TypeVec3 || info.Type == TypeIVec3) && info.Size == 1
	case IVec3Array:
		ok = (info.Type == TypeIVec3 || info.Type == TypeVec3) && int(info.Size) == len(v.Ints)
	}
	if ok {
		return nil
	}
	return &MismatchError{
		Name:     info.Name,
		Kind:     v.Kind,
		Len:      v.Len(),
		Declared: info.Type,
		Size:     info.Size,
	}
}

// Dispatcher pushes uniform sets to a program. Names the program does not
// declare are skipped. Mismatched declarations are left unset, returned to the
// caller and logged the first time they are seen.
type Dispatcher struct {
	reported map[string]bool
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{reported: make(map[string]bool)}
}

// Dispatch uploads every value of set that p declares with a compatible type.
func (d *Dispatcher) Dispatch(p Program, set Set) []error {
	var errs []error
	for _, u := range set {
		info, ok := p.Uniform(u.Name)
		if !ok {
			continue
		}
		if info.Name == "" {
			info.Name = u.Name
		}
		if err := Check(info, u.Value); err != nil {
			errs = append(errs, err)
			if !d.reported[u.Name] {
				d.reported[u.Name] = true
				log.Printf("Uniform configuration error: %v", err)
			}
			continue
		}
		p.Set(info, u.Value)
	}
	return errs
}

// Reset forgets which mismatches were already logged. Call it after the program
// is replaced.
func (d *Dispatcher) Reset() {
	d.reported = make(map[string]bool)
}
