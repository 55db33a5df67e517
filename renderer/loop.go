package renderer

import (
	"context"
	"log"

	"github.com/richinsley/hellotriangle/graphics"
)

// maxUpdatesPerFrame bounds how many fixed ticks one frame may catch up on.
const maxUpdatesPerFrame = 5

// Loop drives a Renderer from a window: fixed-rate update ticks and one
// render per iteration.
type Loop struct {
	Context    graphics.Context
	Renderer   *Renderer
	UpdateRate float64

	updates int
	frames  int
}

func NewLoop(ctx graphics.Context, r *Renderer, updateRate float64) *Loop {
	return &Loop{Context: ctx, Renderer: r, UpdateRate: updateRate}
}

// Stats returns the number of update ticks and rendered frames so far.
func (l *Loop) Stats() (updates, frames int) {
	return l.updates, l.frames
}

// update runs one tick. It returns false when the loop must stop.
func (l *Loop) update() bool {
	if l.Context.KeyPressed(graphics.KeyEscape) {
		l.Context.SetShouldClose(true)
		return false
	}
	l.Renderer.Update()
	l.updates++
	return true
}

// Run blocks until the window is closed, escape is pressed or ctx is done.
// The renderer must already be loaded.
func (l *Loop) Run(ctx context.Context) error {
	width, height := l.Context.GetFramebufferSize()
	l.Renderer.Resize(width, height)
	l.Context.SetResizeCallback(l.Renderer.Resize)
	defer l.Context.SetResizeCallback(nil)

	step := 1.0 / l.UpdateRate
	previous := l.Context.Time()
	// Guarantees an update tick before the first frame.
	lag := step

	for !l.Context.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := l.Context.Time()
		lag += now - previous
		previous = now

		running := true
		for n := 0; lag >= step && n < maxUpdatesPerFrame; n++ {
			if running = l.update(); !running {
				break
			}
			lag -= step
		}
		if !running || l.Context.ShouldClose() {
			break
		}
		if lag >= step {
			lag = 0
		}

		l.Renderer.Render()
		l.Context.EndFrame()
		l.frames++
	}

	log.Printf("Render loop finished after %d updates and %d frames", l.updates, l.frames)
	return nil
}
