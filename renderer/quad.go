package renderer

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// quadVertices is a full-screen quad drawn as a triangle strip. Each vertex is
// position (x, y) then texture coordinate (u, v), with v growing downwards so
// surface row 0 lands at the top of the window.
var quadVertices = []float32{
	-1.0, 1.0, 0.0, 0.0, // top left
	1.0, 1.0, 1.0, 0.0, // top right
	-1.0, -1.0, 0.0, 1.0, // bottom left
	1.0, -1.0, 1.0, 1.0, // bottom right
}

const (
	quadStride      = 4 * 4
	quadVertexCount = 4
)

// quadAttribute is a named attribute of the interleaved quad layout.
type quadAttribute struct {
	name   string
	offset int
}

var quadAttributes = []quadAttribute{
	{"vert", 0},
	{"texcoord", 2 * 4},
}

func newQuadBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

// bindQuad builds a vertex array feeding vbo into p. Attributes the program
// does not declare are skipped.
func bindQuad(p *Program, vbo uint32) {
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	for _, attr := range quadAttributes {
		loc := gl.GetAttribLocation(p.id, gl.Str(p.glName(attr.name)+"\x00"))
		if loc < 0 {
			continue
		}
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), 2, gl.FLOAT, false, quadStride, gl.PtrOffset(attr.offset))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func drawQuad(p *Program) {
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, quadVertexCount)
	gl.BindVertexArray(0)
}
