package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/hellotriangle/graphics"
	"github.com/richinsley/hellotriangle/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

func stageName(stage graphics.ShaderStage) string {
	if stage == graphics.FragmentStage {
		return "fragment"
	}
	return "vertex"
}

// Translate converts a WebGL2 (ESSL 3.00) stage into desktop GLSL 4.10 and
// records how its identifiers were renamed.
func Translate(src shader.Source) (shader.Source, error) {
	t, err := GetTranslator()
	if err != nil {
		return shader.Source{}, fmt.Errorf("failed to create shader translator: %w", err)
	}
	res, err := t.TranslateShader(src.Code, stageName(src.Stage), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return shader.Source{}, fmt.Errorf("%s shader translation failed: %w", src.Stage, err)
	}

	out := shader.Source{
		Stage: src.Stage,
		Path:  src.Path,
		Code:  res.Code,
		Names: make(map[string]string, len(res.Variables)),
	}
	for name, v := range res.Variables {
		out.Names[name] = v.MappedName
	}
	return out, nil
}

// TranslateAll translates both stages of a program.
func TranslateAll(sources shader.Sources) (shader.Sources, error) {
	vs, err := Translate(sources.Vertex)
	if err != nil {
		return shader.Sources{}, err
	}
	fs, err := Translate(sources.Fragment)
	if err != nil {
		return shader.Sources{}, err
	}
	return shader.Sources{Vertex: vs, Fragment: fs}, nil
}
