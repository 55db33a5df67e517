package graphics

// Key identifies a keyboard key independently of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	// EndFrame presents the back buffer and processes pending window events.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// KeyPressed reports whether key is currently held down.
	KeyPressed(key Key) bool
	// SetResizeCallback registers fn to be called with the new framebuffer size.
	SetResizeCallback(fn func(width, height int))
}
