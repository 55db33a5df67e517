package shader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/richinsley/hellotriangle/graphics"
)

// Source is the text of one shader stage.
type Source struct {
	Stage graphics.ShaderStage
	Path  string
	Code  string
	// Names maps identifiers declared in the source file to the names
	// they have in Code. It is nil unless Code was machine translated.
	Names map[string]string
}

// Sources holds the vertex and fragment stages of one program.
type Sources struct {
	Vertex   Source
	Fragment Source
}

// LoadSource reads a shader stage from path. The returned error wraps the
// underlying fs error so callers can test for fs.ErrNotExist.
func LoadSource(stage graphics.ShaderStage, path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s shader: %w", stage, err)
	}
	return Source{Stage: stage, Path: path, Code: string(data)}, nil
}

// LoadSources reads both stages of a program.
func LoadSources(vertexPath, fragmentPath string) (Sources, error) {
	vs, err := LoadSource(graphics.VertexStage, vertexPath)
	if err != nil {
		return Sources{}, err
	}
	fs, err := LoadSource(graphics.FragmentStage, fragmentPath)
	if err != nil {
		return Sources{}, err
	}
	return Sources{Vertex: vs, Fragment: fs}, nil
}

// mappedName returns the identifier to query in the compiled program.
func (s Sources) mappedName(name string) string {
	for _, src := range []Source{s.Vertex, s.Fragment} {
		if mapped, ok := src.Names[name]; ok {
			return mapped
		}
	}
	return name
}

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Stage graphics.ShaderStage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	where := e.Stage.String()
	if e.Path != "" {
		where = fmt.Sprintf("%s (%s)", where, e.Path)
	}
	return fmt.Sprintf("failed to compile %s shader: %s", where, strings.TrimSpace(e.Log))
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", strings.TrimSpace(e.Log))
}

// LocationError lists required attributes or uniforms the linked program
// does not expose.
type LocationError struct {
	Names []string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("program has no active input named %s", strings.Join(e.Names, ", "))
}

// Kind says whether a name is looked up as an attribute or as a uniform.
type Kind int

const (
	Attribute Kind = iota
	Uniform
)

// Input is a named program input to resolve after linking.
type Input struct {
	Name     string
	Kind     Kind
	Optional bool
}

// Program is a linked shader program and the locations resolved for it.
type Program struct {
	ID        uint32
	Vertex    uint32
	Fragment  uint32
	locations map[string]int32
}

// Location returns the resolved location of name, or -1 and false when the
// program does not expose it or it was never requested.
func (p *Program) Location(name string) (int32, bool) {
	loc, ok := p.locations[name]
	if !ok || loc < 0 {
		return -1, false
	}
	return loc, true
}

// Build compiles both stages, links them and resolves inputs. Missing
// required inputs are returned as a *LocationError with the program already
// released; optional inputs resolve to -1.
func Build(dev graphics.Device, sources Sources, inputs ...Input) (*Program, error) {
	vs, err := compile(dev, sources.Vertex)
	if err != nil {
		return nil, err
	}
	fs, err := compile(dev, sources.Fragment)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, err
	}

	id, infoLog, ok := dev.LinkProgram(vs, fs)
	if !ok {
		dev.DeleteProgram(id)
		dev.DeleteShader(vs)
		dev.DeleteShader(fs)
		return nil, &LinkError{Log: infoLog}
	}
	if strings.TrimSpace(infoLog) != "" {
		log.Printf("Program link log: %s", strings.TrimSpace(infoLog))
	}

	p := &Program{
		ID:        id,
		Vertex:    vs,
		Fragment:  fs,
		locations: make(map[string]int32, len(inputs)),
	}

	var missing []string
	for _, in := range inputs {
		name := sources.mappedName(in.Name)
		var loc int32
		switch in.Kind {
		case Uniform:
			loc = dev.UniformLocation(id, name)
		default:
			loc = dev.AttribLocation(id, name)
		}
		p.locations[in.Name] = loc
		if loc < 0 && !in.Optional {
			missing = append(missing, in.Name)
		}
	}
	if len(missing) > 0 {
		p.Destroy(dev)
		return nil, &LocationError{Names: missing}
	}
	return p, nil
}

func compile(dev graphics.Device, src Source) (uint32, error) {
	id, infoLog, ok := dev.CompileShader(src.Stage, src.Code)
	if !ok {
		dev.DeleteShader(id)
		return 0, &CompileError{Stage: src.Stage, Path: src.Path, Log: infoLog}
	}
	if strings.TrimSpace(infoLog) != "" {
		log.Printf("%s shader compile log: %s", src.Stage, strings.TrimSpace(infoLog))
	}
	return id, nil
}

// Destroy releases the program and both shader objects.
func (p *Program) Destroy(dev graphics.Device) {
	dev.DeleteProgram(p.ID)
	dev.DeleteShader(p.Vertex)
	dev.DeleteShader(p.Fragment)
}
