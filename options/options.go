package options

import (
	"flag"
	"fmt"
	"os"

	"github.com/richinsley/goraymarch/camera"
	"github.com/richinsley/goraymarch/motion"
	"github.com/richinsley/goraymarch/shader"
	"gopkg.in/yaml.v3"
)

// Cursor modes understood by the window backend.
const (
	CursorHidden   = "hidden"   // pointer invisible but free, rotation saturates at the window edges
	CursorDisabled = "disabled" // pointer captured, virtual unbounded position
	CursorNormal   = "normal"
)

type CameraOptions struct {
	Position [3]float64 `yaml:"position"`
	Speed    float64    `yaml:"speed"`
}

// Options is the merged configuration: defaults, then the scene file, then any
// flags given on the command line.
type Options struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	FPS         int           `yaml:"fps"`
	Sensitivity float64       `yaml:"sensitivity"`
	SpeedStep   float64       `yaml:"speed_step"`
	ShaderDir   string        `yaml:"shaders"`
	Dialect     string        `yaml:"dialect"`
	Cursor      string        `yaml:"cursor"`
	VSync       bool          `yaml:"vsync"`
	Watch       bool          `yaml:"watch"`
	Crosshair   bool          `yaml:"crosshair"`
	Record      string        `yaml:"record"`
	FFmpegPath  string        `yaml:"ffmpeg"`
	Camera      CameraOptions `yaml:"camera"`
}

func Default() Options {
	return Options{
		Width:       1920,
		Height:      974,
		FPS:         90,
		Sensitivity: motion.DefaultSensitivity,
		SpeedStep:   motion.DefaultSpeedStep,
		Dialect:     string(shader.DialectGLSL),
		Cursor:      CursorHidden,
		Camera: CameraOptions{
			Position: camera.DefaultPosition,
			Speed:    camera.DefaultSpeed,
		},
	}
}

// flagValues mirrors Options as flag pointers so Parse can tell which ones the
// user actually set.
type flagValues struct {
	Config      *string
	Width       *int
	Height      *int
	FPS         *int
	Sensitivity *float64
	SpeedStep   *float64
	ShaderDir   *string
	Dialect     *string
	Cursor      *string
	VSync       *bool
	Watch       *bool
	Crosshair   *bool
	Record      *string
	FFmpegPath  *string
}

// Parse builds Options from command line arguments. A -config scene file is
// applied over the defaults, and flags set explicitly win over the file.
// It returns flag.ErrHelp when -h or -help is given.
func Parse(name string, args []string) (Options, error) {
	def := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fv := flagValues{
		Config:      fs.String("config", "", "YAML scene file"),
		Width:       fs.Int("width", def.Width, "Initial window width"),
		Height:      fs.Int("height", def.Height, "Initial window height"),
		FPS:         fs.Int("fps", def.FPS, "Target frame rate"),
		Sensitivity: fs.Float64("sensitivity", def.Sensitivity, "Mouse sensitivity"),
		SpeedStep:   fs.Float64("speed-step", def.SpeedStep, "Camera speed change per frame while Up/Down is held"),
		ShaderDir:   fs.String("shaders", def.ShaderDir, "Directory holding vertex.glsl and fragment.glsl (empty for built-in shaders)"),
		Dialect:     fs.String("dialect", def.Dialect, "Shader dialect: glsl or webgl2"),
		Cursor:      fs.String("cursor", def.Cursor, "Cursor mode: hidden, disabled or normal"),
		VSync:       fs.Bool("vsync", def.VSync, "Wait for vertical sync on present"),
		Watch:       fs.Bool("watch", def.Watch, "Reload shaders when files in -shaders change"),
		Crosshair:   fs.Bool("crosshair", def.Crosshair, "Draw a crosshair on the overlay surface"),
		Record:      fs.String("record", def.Record, "Record presented frames to this video file"),
		FFmpegPath:  fs.String("ffmpeg", def.FFmpegPath, "Path to ffmpeg executable"),
	}
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	opts := def
	if *fv.Config != "" {
		if err := LoadFile(*fv.Config, &opts); err != nil {
			return Options{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			opts.Width = *fv.Width
		case "height":
			opts.Height = *fv.Height
		case "fps":
			opts.FPS = *fv.FPS
		case "sensitivity":
			opts.Sensitivity = *fv.Sensitivity
		case "speed-step":
			opts.SpeedStep = *fv.SpeedStep
		case "shaders":
			opts.ShaderDir = *fv.ShaderDir
		case "dialect":
			opts.Dialect = *fv.Dialect
		case "cursor":
			opts.Cursor = *fv.Cursor
		case "vsync":
			opts.VSync = *fv.VSync
		case "watch":
			opts.Watch = *fv.Watch
		case "crosshair":
			opts.Crosshair = *fv.Crosshair
		case "record":
			opts.Record = *fv.Record
		case "ffmpeg":
			opts.FFmpegPath = *fv.FFmpegPath
		}
	})

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadFile overlays the keys present in a YAML scene file onto opts.
func LoadFile(path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("options: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return fmt.Errorf("options: unmarshal %s: %w", path, err)
	}
	return nil
}

func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", o.FPS)
	}
	switch o.Cursor {
	case CursorHidden, CursorDisabled, CursorNormal:
	default:
		return fmt.Errorf("unknown cursor mode %q", o.Cursor)
	}
	if _, err := shader.ParseDialect(o.Dialect); err != nil {
		return err
	}
	if o.Watch && o.ShaderDir == "" {
		return fmt.Errorf("-watch needs a -shaders directory")
	}
	return nil
}

// InitialCamera is the camera state the session starts from.
func (o Options) InitialCamera() camera.State {
	s := camera.Default()
	s.Position = o.Camera.Position
	s.Speed = o.Camera.Speed
	return s
}
