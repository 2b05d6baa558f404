package shader

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names looked up inside a shader directory.
const (
	VertexFile   = "vertex.glsl"
	FragmentFile = "fragment.glsl"
)

// Dialect is the language the sources are written in.
type Dialect string

const (
	// DialectGLSL sources are compiled as is by a desktop GL 4.1 core context.
	DialectGLSL Dialect = "glsl"
	// DialectWebGL2 sources are ESSL 3.00 and go through the translator first.
	DialectWebGL2 Dialect = "webgl2"
)

// ParseDialect accepts the names used in flags and scene files.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case "", DialectGLSL:
		return DialectGLSL, nil
	case DialectWebGL2:
		return DialectWebGL2, nil
	}
	return "", fmt.Errorf("unknown shader dialect %q (want %q or %q)", s, DialectGLSL, DialectWebGL2)
}

//go:embed glsl/*.glsl
var builtin embed.FS

// Sources holds the text of both program stages.
type Sources struct {
	Vertex   string
	Fragment string
	// Dir is where the sources were read from, empty for the built-in pair.
	Dir string
}

// ────────────────────────────────── Public API ─────────────────────────────────

// Default returns the built-in raymarching shaders.
func Default() Sources {
	vs, err := builtin.ReadFile("glsl/" + VertexFile)
	if err != nil {
		panic(fmt.Sprintf("shader: embedded %s: %v", VertexFile, err))
	}
	fs, err := builtin.ReadFile("glsl/" + FragmentFile)
	if err != nil {
		panic(fmt.Sprintf("shader: embedded %s: %v", FragmentFile, err))
	}
	return Sources{Vertex: string(vs), Fragment: string(fs)}
}

// Load reads vertex.glsl and fragment.glsl from dir. An empty dir selects the
// built-in pair.
func Load(dir string) (Sources, error) {
	if dir == "" {
		return Default(), nil
	}
	vs, err := readStage(dir, VertexFile)
	if err != nil {
		return Sources{}, err
	}
	fs, err := readStage(dir, FragmentFile)
	if err != nil {
		return Sources{}, err
	}
	return Sources{Vertex: vs, Fragment: fs, Dir: dir}, nil
}

// Reload re-reads the sources from the directory they came from.
func (s Sources) Reload() (Sources, error) {
	return Load(s.Dir)
}

func readStage(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("shader %s is empty", path)
	}
	return string(b), nil
}
