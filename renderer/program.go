package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goraymarch/shader"
	"github.com/richinsley/goraymarch/uniforms"
)

// Program is a linked shader program with its active uniforms indexed by name.
// It implements uniforms.Program.
type Program struct {
	id  uint32
	vao uint32
	// source name -> GL name, filled when the sources were translated
	aliases  map[string]string
	uniforms map[string]uniforms.Info
}

var _ uniforms.Program = (*Program)(nil)

// NewProgram compiles and links src and records its active uniforms.
func NewProgram(src shader.Sources, aliases map[string]string) (*Program, error) {
	id, err := newProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	return &Program{
		id:       id,
		aliases:  aliases,
		uniforms: activeUniforms(id),
	}, nil
}

func (p *Program) glName(name string) string {
	if mapped, ok := p.aliases[name]; ok {
		return mapped
	}
	return name
}

// Uniform implements uniforms.Program.
func (p *Program) Uniform(name string) (uniforms.Info, bool) {
	info, ok := p.uniforms[p.glName(name)]
	if !ok {
		return uniforms.Info{}, false
	}
	info.Name = name
	return info, true
}

// Set implements uniforms.Program. The program must be in use.
func (p *Program) Set(info uniforms.Info, v uniforms.Value) {
	loc := info.Location
	switch info.Type {
	case uniforms.TypeFloat:
		gl.Uniform1f(loc, float32(v.Scalar))
	case uniforms.TypeInt, uniforms.TypeBool, uniforms.TypeSampler2D:
		gl.Uniform1i(loc, int32(v.Scalar))
	case uniforms.TypeUint:
		gl.Uniform1ui(loc, uint32(v.Scalar))
	case uniforms.TypeVec2:
		gl.Uniform2f(loc, float32(v.Vec[0]), float32(v.Vec[1]))
	case uniforms.TypeIVec2:
		gl.Uniform2i(loc, int32(v.Vec[0]), int32(v.Vec[1]))
	case uniforms.TypeVec3:
		if v.Kind == uniforms.IVec3Array {
			flat := v.FlatFloat()
			gl.Uniform3fv(loc, int32(len(v.Ints)), &flat[0])
			return
		}
		gl.Uniform3f(loc, float32(v.Vec[0]), float32(v.Vec[1]), float32(v.Vec[2]))
	case uniforms.TypeIVec3:
		if v.Kind == uniforms.IVec3Array {
			flat := v.Flat()
			gl.Uniform3iv(loc, int32(len(v.Ints)), &flat[0])
			return
		}
		gl.Uniform3i(loc, int32(v.Vec[0]), int32(v.Vec[1]), int32(v.Vec[2]))
	}
}

// Destroy deletes the program and its vertex array.
func (p *Program) Destroy() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func activeUniforms(program uint32) map[string]uniforms.Info {
	var count, maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLength)

	out := make(map[string]uniforms.Info, count)
	if count == 0 || maxLength == 0 {
		return out
	}
	buf := make([]uint8, maxLength+1)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), maxLength, &length, &size, &xtype, &buf[0])
		name := uniformBaseName(string(buf[:length]))
		if name == "" {
			continue
		}
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}
		out[name] = uniforms.Info{
			Name:     name,
			Location: loc,
			Type:     glslType(xtype),
			Size:     size,
		}
	}
	return out
}

// uniformBaseName strips the "[0]" GL appends to array uniforms. Block and
// struct members are not addressable by a plain name and come back empty.
func uniformBaseName(name string) string {
	name = strings.TrimSuffix(name, "[0]")
	if strings.ContainsAny(name, ".[") {
		return ""
	}
	return name
}

func glslType(xtype uint32) uniforms.GLSLType {
	switch xtype {
	case gl.FLOAT:
		return uniforms.TypeFloat
	case gl.INT:
		return uniforms.TypeInt
	case gl.UNSIGNED_INT:
		return uniforms.TypeUint
	case gl.BOOL:
		return uniforms.TypeBool
	case gl.FLOAT_VEC2:
		return uniforms.TypeVec2
	case gl.INT_VEC2:
		return uniforms.TypeIVec2
	case gl.FLOAT_VEC3:
		return uniforms.TypeVec3
	case gl.INT_VEC3:
		return uniforms.TypeIVec3
	case gl.SAMPLER_2D:
		return uniforms.TypeSampler2D
	}
	return uniforms.TypeOther
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex stage: %w", err)
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment stage: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
