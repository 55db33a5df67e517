package gldevice

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/hellotriangle/graphics"
)

var glInitOnce sync.Once

type renderTarget struct {
	texture      uint32
	depthStorage uint32
}

// Device issues graphics.Device calls against the OpenGL 4.1 core profile.
type Device struct {
	vao     uint32
	targets map[uint32]renderTarget
}

// New loads the OpenGL function pointers and binds the vertex array object
// that core profile attribute state lives in. A context must be current.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	d := &Device{targets: make(map[uint32]renderTarget)}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

// Version reports the GL_VERSION string of the current context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Destroy releases the vertex array object and any remaining render targets.
func (d *Device) Destroy() {
	for fbo := range d.targets {
		d.DeleteRenderTarget(fbo)
	}
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &d.vao)
}

func stageEnum(stage graphics.ShaderStage) uint32 {
	if stage == graphics.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *Device) CompileShader(stage graphics.ShaderStage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(stageEnum(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logText := ""
	if logLength > 0 {
		logText = strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		logText = strings.TrimRight(logText, "\x00")
	}
	return shader, logText, status != gl.FALSE
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)

	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := ""
	if logLength > 0 {
		logText = strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		logText = strings.TrimRight(logText, "\x00")
	}
	return program, logText, status != gl.FALSE
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *Device) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *Device) BufferData(buffer uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) VertexAttribPointer(location int32, size int32, normalized bool) {
	gl.VertexAttribPointer(uint32(location), size, gl.FLOAT, normalized, 0, gl.PtrOffset(0))
}

func (d *Device) UnbindArrayBuffer() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) EnableVertexAttribArray(location int32) {
	gl.EnableVertexAttribArray(uint32(location))
}

func (d *Device) DisableVertexAttribArray(location int32) {
	gl.DisableVertexAttribArray(uint32(location))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (d *Device) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (d *Device) Flush() {
	gl.Flush()
}

func (d *Device) CreateRenderTarget(width, height int) (uint32, error) {
	var fbo uint32
	var rt renderTarget

	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	gl.GenTextures(1, &rt.texture)
	gl.BindTexture(gl.TEXTURE_2D, rt.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.texture, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenRenderbuffers(1, &rt.depthStorage)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depthStorage)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.depthStorage)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	d.targets[fbo] = rt
	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		d.DeleteRenderTarget(fbo)
		return 0, fmt.Errorf("offscreen framebuffer %dx%d is not complete", width, height)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return fbo, nil
}

func (d *Device) BindRenderTarget(target uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, target)
}

func (d *Device) DeleteRenderTarget(target uint32) {
	rt, ok := d.targets[target]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &rt.texture)
	gl.DeleteRenderbuffers(1, &rt.depthStorage)
	gl.DeleteFramebuffers(1, &target)
	delete(d.targets, target)
}

func (d *Device) ReadPixels(width, height int, dst []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

var _ graphics.Device = (*Device)(nil)
