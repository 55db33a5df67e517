package renderer

import (
	"context"
	"testing"

	"github.com/richinsley/hellotriangle/graphics"
	"github.com/richinsley/hellotriangle/graphics/graphicstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rates and frame times are powers of two so the simulated clock is exact.
const testRate = 32.0

func TestLoopEscapeStopsBeforeNextRender(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	win := graphicstest.NewContext(640, 480, 1/testRate)
	win.OnEndFrame = func(c *graphicstest.Context) {
		if c.Frames == 3 {
			c.Keys[graphics.KeyEscape] = true
		}
	}
	dev.Reset()

	loop := NewLoop(win, r, testRate)
	require.NoError(t, loop.Run(context.Background()))

	updates, frames := loop.Stats()
	assert.Equal(t, 3, frames)
	assert.Equal(t, 3, updates)
	assert.Equal(t, 3, dev.Count("DrawTriangles"))
	assert.Equal(t, 3, win.Frames)
	assert.True(t, win.ShouldClose())
}

func TestLoopUpdatesBeforeFirstRender(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	win := graphicstest.NewContext(640, 480, 0)
	win.OnEndFrame = func(c *graphicstest.Context) { c.Closed = true }
	dev.Reset()

	require.NoError(t, NewLoop(win, r, testRate).Run(context.Background()))

	names := dev.Names()
	upload := indexOf(names, "BufferData")
	draw := indexOf(names, "DrawTriangles")
	require.GreaterOrEqual(t, upload, 0)
	require.GreaterOrEqual(t, draw, 0)
	assert.Less(t, upload, draw)
}

func TestLoopFixedUpdateCadence(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	win := graphicstest.NewContext(640, 480, 1/(4*testRate))
	win.OnEndFrame = func(c *graphicstest.Context) {
		if c.Frames == 16 {
			c.Closed = true
		}
	}

	loop := NewLoop(win, r, testRate)
	require.NoError(t, loop.Run(context.Background()))

	updates, frames := loop.Stats()
	assert.Equal(t, 16, frames)
	assert.Equal(t, 4, updates)
}

func TestLoopDropsBacklog(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	win := graphicstest.NewContext(640, 480, 0)
	win.OnEndFrame = func(c *graphicstest.Context) {
		switch c.Frames {
		case 1:
			c.Advance(1)
		case 3:
			c.Closed = true
		}
	}

	loop := NewLoop(win, r, testRate)
	require.NoError(t, loop.Run(context.Background()))

	updates, frames := loop.Stats()
	assert.Equal(t, 3, frames)
	assert.Equal(t, 1+maxUpdatesPerFrame, updates)
}

func TestLoopResize(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	win := graphicstest.NewContext(640, 480, 1/testRate)
	win.OnEndFrame = func(c *graphicstest.Context) {
		switch c.Frames {
		case 1:
			c.Resize(320, 200)
		case 2:
			c.Closed = true
		}
	}

	require.NoError(t, NewLoop(win, r, testRate).Run(context.Background()))

	w, h := r.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
	assert.InDelta(t, 320.0/200.0, float64(r.Projection()[5]/r.Projection()[0]), 1e-5)
}

func TestLoopContextCancelled(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	win := graphicstest.NewContext(640, 480, 1/testRate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := NewLoop(win, r, testRate)
	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, frames := loop.Stats()
	assert.Zero(t, frames)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
