package graphics

import "fmt"

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}

// Device is the subset of OpenGL the triangle viewer needs. All methods must be
// called from the thread that owns the current context.
type Device interface {
	// CompileShader creates and compiles a shader object. ok is false when the
	// compile status is GL_FALSE; infoLog holds the driver's message either way.
	CompileShader(stage ShaderStage, source string) (shader uint32, infoLog string, ok bool)
	LinkProgram(shaders ...uint32) (program uint32, infoLog string, ok bool)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	// AttribLocation and UniformLocation return -1 when the name is not active.
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m *[16]float32)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	// BufferData binds buffer to GL_ARRAY_BUFFER and replaces its contents.
	BufferData(buffer uint32, data []float32)
	// VertexAttribPointer describes the currently bound array buffer as tightly
	// packed float vectors of the given size.
	VertexAttribPointer(location int32, size int32, normalized bool)
	UnbindArrayBuffer()
	EnableVertexAttribArray(location int32)
	DisableVertexAttribArray(location int32)

	ClearColor(r, g, b, a float32)
	Viewport(x, y, width, height int32)
	// Clear clears the color and depth buffers.
	Clear()
	EnableDepthTest()
	DrawTriangles(first, count int32)
	Flush()

	// CreateRenderTarget allocates an RGBA8 framebuffer with a depth attachment.
	CreateRenderTarget(width, height int) (uint32, error)
	// BindRenderTarget binds target for drawing and reading; 0 selects the window.
	BindRenderTarget(target uint32)
	DeleteRenderTarget(target uint32)
	// ReadPixels reads the bound framebuffer as bottom-up RGBA8 into dst.
	ReadPixels(width, height int, dst []byte)
}
