package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/richinsley/goraymarch/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var translator *gst.ShaderTranslator

// GetTranslator returns the process wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	if translator == nil {
		t, err := gst.NewShaderTranslator(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create shader translator: %w", err)
		}
		translator = t
	}
	return translator, nil
}

// Translate converts WebGL2 (ESSL 3.00) sources into GLSL 4.10 core. The
// translator renames user identifiers, so the returned map gives the GL name
// for every declared uniform and attribute, keyed by the name in the source.
func Translate(src shader.Sources) (shader.Sources, map[string]string, error) {
	t, err := GetTranslator()
	if err != nil {
		return shader.Sources{}, nil, err
	}

	vs, err := t.TranslateShader(src.Vertex, "vertex", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return shader.Sources{}, nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := t.TranslateShader(src.Fragment, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return shader.Sources{}, nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	raw := make(map[string]string, len(vs.Variables)+len(fs.Variables))
	for name, v := range vs.Variables {
		raw[name] = v.MappedName
	}
	for name, v := range fs.Variables {
		raw[name] = v.MappedName
	}

	out := shader.Sources{Vertex: vs.Code, Fragment: fs.Code, Dir: src.Dir}
	return out, Aliases(raw), nil
}

// Aliases normalizes a translator variable table: array entries reported as
// "name[0]" are folded into "name", and identity mappings are dropped.
func Aliases(vars map[string]string) map[string]string {
	out := make(map[string]string, len(vars))
	for name, mapped := range vars {
		name = strings.TrimSuffix(name, "[0]")
		mapped = strings.TrimSuffix(mapped, "[0]")
		if name == "" || mapped == "" || name == mapped {
			continue
		}
		out[name] = mapped
	}
	return out
}
