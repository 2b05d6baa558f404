// Package frameloop drives the scene: at a fixed rate it drains window events,
// renders the current camera and then advances the camera from fresh input.
//
// Rendering happens before the motion update, so every frame shows the camera
// computed at the end of the previous iteration.
package frameloop

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/richinsley/goraymarch/camera"
	"github.com/richinsley/goraymarch/graphics"
	"github.com/richinsley/goraymarch/inputs"
	"github.com/richinsley/goraymarch/motion"
	"github.com/richinsley/goraymarch/uniforms"
)

const titleInterval = time.Second

// State of the loop. Terminating is final.
type State int

const (
	Running State = iota
	Terminating
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// FrameContext is the per-frame timing and viewport information.
type FrameContext struct {
	// Frame counts iterations, starting at 0 before the first one. It is the
	// shader's time input.
	Frame  int64
	Width  int
	Height int
}

// Renderer draws a uniform set into the back buffer.
type Renderer interface {
	Render(set uniforms.Set)
	Resize(width, height int)
	// Reload rebuilds the program from its sources, keeping the old one on error.
	Reload() error
}

// Capturer grabs the rendered frame before it is presented.
type Capturer interface {
	Capture(width, height int)
}

type Config struct {
	Window   graphics.Window
	Input    inputs.Sampler
	Renderer Renderer
	Motion   *motion.Controller
	Camera   camera.State
	FPS      int
	// Reloads delivers changed shader paths. Optional.
	Reloads <-chan string
	// Capture receives every rendered frame. Optional.
	Capture Capturer
}

type Loop struct {
	window   graphics.Window
	input    inputs.Sampler
	renderer Renderer
	motion   *motion.Controller
	reloads  <-chan string
	capture  Capturer
	pacer    *Pacer

	state     State
	cam       camera.State
	frame     FrameContext
	lastTitle time.Time
}

func New(cfg Config) *Loop {
	w, h := cfg.Window.GetFramebufferSize()
	return &Loop{
		window:   cfg.Window,
		input:    cfg.Input,
		renderer: cfg.Renderer,
		motion:   cfg.Motion,
		reloads:  cfg.Reloads,
		capture:  cfg.Capture,
		pacer:    NewPacer(cfg.FPS),
		state:    Running,
		cam:      cfg.Camera,
		frame:    FrameContext{Width: w, Height: h},
	}
}

func (l *Loop) State() State { return l.state }

// Camera returns the state the next frame will render.
func (l *Loop) Camera() camera.State { return l.cam }

func (l *Loop) Frame() FrameContext { return l.frame }

func (l *Loop) FPS() float64 { return l.pacer.FPS() }

// Run steps until the loop terminates. Cancelling ctx is a quit request,
// honored at the next event step.
func (l *Loop) Run(ctx context.Context) error {
	log.Printf("Starting render loop at %dx%d", l.frame.Width, l.frame.Height)
	for l.Step(ctx) == Running {
	}
	log.Printf("Render loop finished after %d frames", l.frame.Frame)
	return nil
}

// Step runs one iteration and returns the resulting state.
func (l *Loop) Step(ctx context.Context) State {
	if l.state == Terminating {
		return l.state
	}

	l.pacer.Tick()
	l.frame.Frame++

	if !l.processEvents(ctx) {
		l.state = Terminating
		return l.state
	}

	l.renderer.Render(uniforms.Build(l.cam, l.frame.Frame, l.frame.Width, l.frame.Height))
	if l.capture != nil {
		l.capture.Capture(l.frame.Width, l.frame.Height)
	}
	l.window.Present()
	l.updateTitle()

	l.motion.Update(&l.cam, l.input.Sample(), l.frame.Width, l.frame.Height)
	return l.state
}

// processEvents drains the window and reload queues. It reports false when the
// loop must terminate.
func (l *Loop) processEvents(ctx context.Context) bool {
	if l.input.Sample().Keys.Pressed(inputs.KeyEscape) {
		log.Println("Escape pressed, quitting")
		return false
	}
	select {
	case <-ctx.Done():
		log.Println("Interrupted, quitting")
		return false
	default:
	}

	for _, e := range l.window.PollEvents() {
		switch e.Type {
		case graphics.EventQuit:
			log.Println("Quit requested")
			return false
		case graphics.EventResize:
			l.frame.Width, l.frame.Height = e.Width, e.Height
			l.renderer.Resize(e.Width, e.Height)
		}
	}

	if l.drainReloads() {
		if err := l.renderer.Reload(); err != nil {
			log.Printf("Shader reload failed, keeping the previous program: %v", err)
		}
	}
	return true
}

func (l *Loop) drainReloads() bool {
	pending := false
	for l.reloads != nil {
		select {
		case path, ok := <-l.reloads:
			if !ok {
				l.reloads = nil
				return pending
			}
			log.Printf("Shader changed: %s", path)
			pending = true
		default:
			return pending
		}
	}
	return pending
}

func (l *Loop) updateTitle() {
	now := l.pacer.Now()
	if !l.lastTitle.IsZero() && now.Sub(l.lastTitle) < titleInterval {
		return
	}
	l.lastTitle = now
	l.window.SetTitle(fmt.Sprintf("FPS: %.1f  Speed: %.3f", l.pacer.FPS(), l.cam.Speed))
}
