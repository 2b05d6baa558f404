package renderer

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goraymarch/graphics"
	"github.com/richinsley/goraymarch/shader"
	"github.com/richinsley/goraymarch/translator"
	"github.com/richinsley/goraymarch/uniforms"
)

// Ensure gl.Init() is called only once.
var glInitOnce sync.Once

// Renderer owns every GL resource of the scene: the program, the quad buffer
// and the overlay surface. All methods must run on the thread that owns the
// context.
type Renderer struct {
	context    graphics.Window
	program    *Program
	quadVBO    uint32
	surface    *Surface
	dispatcher *uniforms.Dispatcher
	sources    shader.Sources
	dialect    shader.Dialect
	width      int
	height     int
}

// NewRenderer makes the window's context current, initializes the GL bindings
// and builds the program from src. Compile or link errors are returned as is.
func NewRenderer(ctx graphics.Window, src shader.Sources, dialect shader.Dialect, crosshair bool) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		sources:    src,
		dialect:    dialect,
		dispatcher: uniforms.NewDispatcher(),
	}

	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r.width, r.height = ctx.GetFramebufferSize()
	r.quadVBO = newQuadBuffer()

	var err error
	r.program, err = r.compile(src)
	if err != nil {
		gl.DeleteBuffers(1, &r.quadVBO)
		return nil, err
	}
	r.surface = NewSurface(r.width, r.height, crosshair)
	return r, nil
}

func (r *Renderer) compile(src shader.Sources) (*Program, error) {
	var aliases map[string]string
	if r.dialect == shader.DialectWebGL2 {
		var err error
		src, aliases, err = translator.Translate(src)
		if err != nil {
			return nil, err
		}
	}
	p, err := NewProgram(src, aliases)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	bindQuad(p, r.quadVBO)
	return p, nil
}

// Render draws one frame with set into the back buffer. Presenting is left to
// the window.
func (r *Renderer) Render(set uniforms.Set) {
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.surface.Bind(uniforms.TextureUnit)
	gl.UseProgram(r.program.id)
	r.dispatcher.Dispatch(r.program, set)
	drawQuad(r.program)
	gl.UseProgram(0)
	r.surface.Unbind(uniforms.TextureUnit)
}

// Resize adopts a new framebuffer size and recreates the overlay surface.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.surface.Resize(width, height)
}

// Reload re-reads the shader sources and swaps in the new program. On failure
// the current program stays active.
func (r *Renderer) Reload() error {
	if r.sources.Dir == "" {
		return nil
	}
	src, err := r.sources.Reload()
	if err != nil {
		return err
	}
	p, err := r.compile(src)
	if err != nil {
		return err
	}
	r.program.Destroy()
	r.program = p
	r.sources = src
	r.dispatcher.Reset()
	log.Printf("Reloaded shaders from %s", src.Dir)
	return nil
}

// ReadPixels copies the back buffer as bottom-up RGBA rows into dst, which must
// hold width*height*4 bytes.
func (r *Renderer) ReadPixels(width, height int, dst []byte) {
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

// Shutdown releases the GL resources. The window itself is shut down by its owner.
func (r *Renderer) Shutdown() {
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
	if r.surface != nil {
		r.surface.Destroy()
		r.surface = nil
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
		r.quadVBO = 0
	}
}
