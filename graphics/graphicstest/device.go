// Package graphicstest provides in-memory fakes of the graphics interfaces.
package graphicstest

import (
	"fmt"
	"strings"

	"github.com/richinsley/hellotriangle/graphics"
)

// Call is one recorded Device method invocation.
type Call struct {
	Name string
	Args []any
}

// Device records every call and simulates just enough GL state for the
// renderer and shader packages. Shader sources containing FailCompileMarker
// fail to compile; LinkFails forces link errors.
type Device struct {
	Calls []Call

	// Attribs and Uniforms are the active names of every linked program.
	Attribs   []string
	Uniforms  []string
	LinkFails bool
	LinkLog   string

	// Uploads holds the latest BufferData contents per buffer handle.
	Uploads map[uint32][]float32
	// Matrices holds the latest UniformMatrix4 value per location.
	Matrices map[int32][16]float32
	// Pixels fills ReadPixels output.
	Pixels byte

	next    uint32
	shaders map[uint32]graphics.ShaderStage
	deleted map[uint32]bool
}

const FailCompileMarker = "#error"

// NewDevice returns a fake whose programs expose the triangle's attributes
// and model-view uniform.
func NewDevice() *Device {
	return &Device{
		Attribs:  []string{"vPosition", "vColor"},
		Uniforms: []string{"modelView"},
		Uploads:  make(map[uint32][]float32),
		Matrices: make(map[int32][16]float32),
		shaders:  make(map[uint32]graphics.ShaderStage),
		deleted:  make(map[uint32]bool),
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

// Count returns how many times the named method was called.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded method names in order.
func (d *Device) Names() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset forgets recorded calls but keeps simulated state.
func (d *Device) Reset() {
	d.Calls = nil
}

// Deleted reports whether handle was released through a Delete* call.
func (d *Device) Deleted(handle uint32) bool {
	return d.deleted[handle]
}

func (d *Device) CompileShader(stage graphics.ShaderStage, source string) (uint32, string, bool) {
	d.record("CompileShader", stage, source)
	id := d.handle()
	d.shaders[id] = stage
	if strings.Contains(source, FailCompileMarker) {
		return id, fmt.Sprintf("0:1(1): error: %s shader rejected", stage), false
	}
	return id, "", true
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	d.record("LinkProgram", shaders)
	id := d.handle()
	if d.LinkFails {
		return id, d.LinkLog, false
	}
	return id, d.LinkLog, true
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader", shader)
	d.deleted[shader] = true
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	d.deleted[program] = true
}

func (d *Device) UseProgram(program uint32) { d.record("UseProgram", program) }

func (d *Device) AttribLocation(program uint32, name string) int32 {
	d.record("AttribLocation", program, name)
	for i, a := range d.Attribs {
		if a == name {
			return int32(i)
		}
	}
	return -1
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", program, name)
	for i, u := range d.Uniforms {
		if u == name {
			return int32(i)
		}
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	d.record("UniformMatrix4", location)
	d.Matrices[location] = *m
}

func (d *Device) GenBuffer() uint32 {
	d.record("GenBuffer")
	return d.handle()
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer", buffer)
	d.deleted[buffer] = true
}

func (d *Device) BufferData(buffer uint32, data []float32) {
	d.record("BufferData", buffer, len(data))
	d.Uploads[buffer] = append([]float32(nil), data...)
}

func (d *Device) VertexAttribPointer(location int32, size int32, normalized bool) {
	d.record("VertexAttribPointer", location, size, normalized)
}

func (d *Device) UnbindArrayBuffer() { d.record("UnbindArrayBuffer") }

func (d *Device) EnableVertexAttribArray(location int32) {
	d.record("EnableVertexAttribArray", location)
}

func (d *Device) DisableVertexAttribArray(location int32) {
	d.record("DisableVertexAttribArray", location)
}

func (d *Device) ClearColor(r, g, b, a float32) { d.record("ClearColor", r, g, b, a) }

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
}

func (d *Device) Clear() { d.record("Clear") }

func (d *Device) EnableDepthTest() { d.record("EnableDepthTest") }

func (d *Device) DrawTriangles(first, count int32) { d.record("DrawTriangles", first, count) }

func (d *Device) Flush() { d.record("Flush") }

func (d *Device) CreateRenderTarget(width, height int) (uint32, error) {
	d.record("CreateRenderTarget", width, height)
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("invalid render target size %dx%d", width, height)
	}
	return d.handle(), nil
}

func (d *Device) BindRenderTarget(target uint32) { d.record("BindRenderTarget", target) }

func (d *Device) DeleteRenderTarget(target uint32) {
	d.record("DeleteRenderTarget", target)
	d.deleted[target] = true
}

func (d *Device) ReadPixels(width, height int, dst []byte) {
	d.record("ReadPixels", width, height)
	for i := range dst {
		dst[i] = d.Pixels
	}
}
