package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goraymarch/graphics"
	"github.com/richinsley/goraymarch/inputs"
	"github.com/richinsley/goraymarch/options"
)

// keyMap binds the scene's key set to physical keys.
var keyMap = map[inputs.Key]glfw.Key{
	inputs.KeyForward:   glfw.KeyW,
	inputs.KeyBackward:  glfw.KeyS,
	inputs.KeyLeft:      glfw.KeyA,
	inputs.KeyRight:     glfw.KeyD,
	inputs.KeyUp:        glfw.KeySpace,
	inputs.KeyDown:      glfw.KeyLeftShift,
	inputs.KeySpeedUp:   glfw.KeyUp,
	inputs.KeySpeedDown: glfw.KeyDown,
	inputs.KeyEscape:    glfw.KeyEscape,
}

// Context is a GLFW window with an OpenGL 4.1 core context. It implements
// graphics.Window and inputs.Sampler.
type Context struct {
	window *glfw.Window
	// events queued by GLFW callbacks during PollEvents
	pending []graphics.Event
}

var (
	_ graphics.Window = (*Context)(nil)
	_ inputs.Sampler  = (*Context)(nil)
)

// New creates the window and makes its context current on the calling thread.
func New(opts *options.Options) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, "goraymarch", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	c := &Context{window: win}
	c.MakeCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	switch opts.Cursor {
	case options.CursorDisabled:
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			win.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	case options.CursorHidden:
		win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}

	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)
	win.SetCloseCallback(c.glfwCloseCallback)
	win.SetKeyCallback(c.glfwKeyCallback)

	return c, nil
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	c.pending = append(c.pending, graphics.Event{Type: graphics.EventResize, Width: width, Height: height})
}

func (c *Context) glfwCloseCallback(w *glfw.Window) {
	c.pending = append(c.pending, graphics.Event{Type: graphics.EventQuit})
}

// glfwKeyCallback turns an Escape press into a quit request.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		c.pending = append(c.pending, graphics.Event{Type: graphics.EventQuit})
	}
}

// PollEvents implements graphics.Window.
func (c *Context) PollEvents() []graphics.Event {
	glfw.PollEvents()
	events := c.pending
	c.pending = nil
	if c.window.ShouldClose() && !hasQuit(events) {
		events = append(events, graphics.Event{Type: graphics.EventQuit})
	}
	return events
}

func hasQuit(events []graphics.Event) bool {
	for _, e := range events {
		if e.Type == graphics.EventQuit {
			return true
		}
	}
	return false
}

// Sample implements inputs.Sampler. The pointer is reported in framebuffer
// pixels, origin top-left, so it shares units with the viewport size.
func (c *Context) Sample() inputs.Snapshot {
	var snap inputs.Snapshot
	if c.window == nil {
		return snap
	}
	for key, glfwKey := range keyMap {
		snap.Keys.Set(key, c.window.GetKey(glfwKey) == glfw.Press)
	}

	fbWidth, fbHeight := c.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}

	cursorX, cursorY := c.window.GetCursorPos()
	snap.MouseX = cursorX * scaleX
	snap.MouseY = cursorY * scaleY
	return snap
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window. Safe to call more than once.
func (c *Context) Shutdown() {
	if c.window == nil {
		return
	}
	c.window.Destroy()
	c.window = nil
	log.Printf("Window destroyed")
}

func (c *Context) Present() {
	c.window.SwapBuffers()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
