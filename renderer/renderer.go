package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/hellotriangle/graphics"
	"github.com/richinsley/hellotriangle/scene"
	"github.com/richinsley/hellotriangle/shader"
)

// Names of the inputs the triangle shaders declare.
const (
	PositionAttrib   = "vPosition"
	ColorAttrib      = "vColor"
	ModelViewUniform = "modelView"
	// ProjectionUniform is optional; shaders without it ignore the projection.
	ProjectionUniform = "projection"
)

// ProgramInputs lists the inputs resolved when the shader program is built.
var ProgramInputs = []shader.Input{
	{Name: PositionAttrib, Kind: shader.Attribute},
	{Name: ColorAttrib, Kind: shader.Attribute},
	{Name: ModelViewUniform, Kind: shader.Uniform},
	{Name: ProjectionUniform, Kind: shader.Uniform, Optional: true},
}

// Renderer owns every GPU resource of the triangle and implements the
// Load, Resize, Update and Render lifecycle hooks.
type Renderer struct {
	device   graphics.Device
	triangle *scene.Triangle
	program  *shader.Program

	positionLoc   int32
	colorLoc      int32
	modelViewLoc  int32
	projectionLoc int32

	positionVBO  uint32
	colorVBO     uint32
	modelViewVBO uint32 // allocated but never written

	projection mgl32.Mat4
	width      int
	height     int
}

func NewRenderer(device graphics.Device, triangle *scene.Triangle) *Renderer {
	return &Renderer{
		device:        device,
		triangle:      triangle,
		positionLoc:   -1,
		colorLoc:      -1,
		modelViewLoc:  -1,
		projectionLoc: -1,
		projection:    mgl32.Ident4(),
	}
}

// Load builds the shader program, resolves its inputs and allocates the
// vertex buffers. It runs once, before the first Resize.
func (r *Renderer) Load(sources shader.Sources) error {
	program, err := shader.Build(r.device, sources, ProgramInputs...)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program
	r.positionLoc, _ = program.Location(PositionAttrib)
	r.colorLoc, _ = program.Location(ColorAttrib)
	r.modelViewLoc, _ = program.Location(ModelViewUniform)
	r.projectionLoc, _ = program.Location(ProjectionUniform)

	r.positionVBO = r.device.GenBuffer()
	r.colorVBO = r.device.GenBuffer()
	r.modelViewVBO = r.device.GenBuffer()

	c := scene.ClearColor
	r.device.ClearColor(c[0], c[1], c[2], c[3])
	return nil
}

// Resize updates the viewport and recomputes the projection for the new
// framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.device.Viewport(0, 0, int32(width), int32(height))
	r.projection = scene.Projection(width, height)
}

// Projection returns the projection computed by the last Resize.
func (r *Renderer) Projection() mgl32.Mat4 {
	return r.projection
}

// Size returns the framebuffer size of the last Resize.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Update re-uploads the vertex data and matrices. The data never changes;
// every tick replaces the buffer contents in full.
func (r *Renderer) Update() {
	r.device.UseProgram(r.program.ID)

	r.device.BufferData(r.positionVBO, r.triangle.PositionData())
	r.device.VertexAttribPointer(r.positionLoc, 3, false)

	r.device.BufferData(r.colorVBO, r.triangle.ColorData())
	r.device.VertexAttribPointer(r.colorLoc, 3, true)

	mv := [16]float32(r.triangle.ModelView)
	r.device.UniformMatrix4(r.modelViewLoc, &mv)
	if r.projectionLoc >= 0 {
		proj := [16]float32(r.projection)
		r.device.UniformMatrix4(r.projectionLoc, &proj)
	}

	r.device.UnbindArrayBuffer()
}

// Render draws the triangle into the bound framebuffer. Presenting the frame
// is left to the caller.
func (r *Renderer) Render() {
	r.device.Viewport(0, 0, int32(r.width), int32(r.height))
	r.device.Clear()
	r.device.EnableDepthTest()

	r.device.EnableVertexAttribArray(r.positionLoc)
	r.device.EnableVertexAttribArray(r.colorLoc)

	r.device.DrawTriangles(0, scene.VertexCount)

	r.device.DisableVertexAttribArray(r.positionLoc)
	r.device.DisableVertexAttribArray(r.colorLoc)

	r.device.Flush()
}

// Shutdown releases the buffers and the shader program.
func (r *Renderer) Shutdown() {
	if r.program == nil {
		return
	}
	r.device.DeleteBuffer(r.positionVBO)
	r.device.DeleteBuffer(r.colorVBO)
	r.device.DeleteBuffer(r.modelViewVBO)
	r.program.Destroy(r.device)
	r.program = nil
}
