package graphicstest

import "github.com/richinsley/hellotriangle/graphics"

// Context is a scripted window. Each EndFrame advances the clock by
// FrameTime seconds and runs OnEndFrame, which tests use to press keys or
// resize the window between frames.
type Context struct {
	Width, Height int
	FrameTime     float64
	Frames        int
	Closed        bool
	ShutdownCalls int
	Keys          map[graphics.Key]bool
	OnEndFrame    func(c *Context)

	clock    float64
	onResize func(width, height int)
}

func NewContext(width, height int, frameTime float64) *Context {
	return &Context{
		Width:     width,
		Height:    height,
		FrameTime: frameTime,
		Keys:      make(map[graphics.Key]bool),
	}
}

func (c *Context) MakeCurrent() {}

func (c *Context) Shutdown() { c.ShutdownCalls++ }

func (c *Context) ShouldClose() bool { return c.Closed }

func (c *Context) SetShouldClose(v bool) { c.Closed = v }

func (c *Context) EndFrame() {
	c.Frames++
	c.clock += c.FrameTime
	if c.OnEndFrame != nil {
		c.OnEndFrame(c)
	}
}

func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }

func (c *Context) Time() float64 { return c.clock }

// Advance moves the clock without presenting a frame.
func (c *Context) Advance(seconds float64) { c.clock += seconds }

func (c *Context) KeyPressed(key graphics.Key) bool { return c.Keys[key] }

func (c *Context) SetResizeCallback(fn func(width, height int)) { c.onResize = fn }

// Resize changes the framebuffer size and fires the registered callback.
func (c *Context) Resize(width, height int) {
	c.Width, c.Height = width, height
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

var _ graphics.Context = (*Context)(nil)
var _ graphics.Device = (*Device)(nil)
