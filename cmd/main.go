package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/goraymarch/frameloop"
	"github.com/richinsley/goraymarch/glfwcontext"
	"github.com/richinsley/goraymarch/motion"
	"github.com/richinsley/goraymarch/options"
	"github.com/richinsley/goraymarch/recorder"
	"github.com/richinsley/goraymarch/renderer"
	"github.com/richinsley/goraymarch/shader"
	"github.com/richinsley/goraymarch/shaderwatch"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := options.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Invalid options: %v", err)
	}

	if err := run(&opts); err != nil {
		log.Fatalf("%v", err)
	}
}

// run owns every resource for the session. Each one is released by a defer, so
// a quit from any source unwinds the same way.
func run(opts *options.Options) error {
	dialect, err := shader.ParseDialect(opts.Dialect)
	if err != nil {
		return err
	}
	src, err := shader.Load(opts.ShaderDir)
	if err != nil {
		return fmt.Errorf("failed to load shaders: %w", err)
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	window, err := glfwcontext.New(opts)
	if err != nil {
		return err
	}
	defer window.Shutdown()

	r, err := renderer.NewRenderer(window, src, dialect, opts.Crosshair)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	cfg := frameloop.Config{
		Window:   window,
		Input:    window,
		Renderer: r,
		Motion:   motion.NewController(opts.SpeedStep, opts.Sensitivity),
		Camera:   opts.InitialCamera(),
		FPS:      opts.FPS,
	}

	if opts.Watch {
		w, err := shaderwatch.NewWatcher(opts.ShaderDir)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", opts.ShaderDir, err)
		}
		defer w.Close()
		cfg.Reloads = w.Events
	}

	if opts.Record != "" {
		width, height := window.GetFramebufferSize()
		rec, err := recorder.New(opts.Record, width, height, opts.FPS, opts.FFmpegPath, r)
		if err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("Recording failed: %v", err)
			} else {
				log.Printf("Successfully recorded to %s", opts.Record)
			}
		}()
		cfg.Capture = rec
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return frameloop.New(cfg).Run(ctx)
}
