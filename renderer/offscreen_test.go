package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/richinsley/hellotriangle/encoder"
	"github.com/richinsley/hellotriangle/graphics/graphicstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	dev := graphicstest.NewDevice()
	dev.Pixels = 0x7f
	r := loadedRenderer(t, dev)

	var got []*encoder.Frame
	rec := &Recorder{
		Renderer:   r,
		Settings:   encoder.Settings{Width: 4, Height: 2, FPS: 8, OutputFile: "out.mp4", Codec: "h264"},
		Duration:   1,
		UpdateRate: 8,
		Encode: func(s encoder.Settings, frames <-chan *encoder.Frame) error {
			for f := range frames {
				got = append(got, f)
			}
			return nil
		},
	}
	require.Equal(t, 8, rec.FrameCount())
	require.NoError(t, rec.Run(context.Background()))

	require.Len(t, got, 8)
	for i, f := range got {
		assert.Equal(t, int64(i), f.PTS)
		assert.Len(t, f.Pixels, 32)
		assert.Equal(t, byte(0x7f), f.Pixels[31])
	}
	assert.Equal(t, 8, dev.Count("DrawTriangles"))
	assert.Equal(t, 8, dev.Count("ReadPixels"))
	assert.Equal(t, 8, dev.Count("BufferData")/2)
	assert.Equal(t, 1, dev.Count("CreateRenderTarget"))
	assert.Equal(t, 1, dev.Count("DeleteRenderTarget"))

	w, h := r.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
}

func TestRecorderEncoderFailure(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)

	rec := &Recorder{
		Renderer:   r,
		Settings:   encoder.Settings{Width: 2, Height: 2, FPS: 10, OutputFile: "out.mp4"},
		Duration:   2,
		UpdateRate: 30,
		Encode: func(s encoder.Settings, frames <-chan *encoder.Frame) error {
			return errors.New("boom")
		},
	}
	err := rec.Run(context.Background())
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, dev.Count("DeleteRenderTarget"))
}

func TestRecorderInvalidTarget(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)

	rec := &Recorder{
		Renderer:   r,
		Settings:   encoder.Settings{Width: 0, Height: 2, FPS: 10},
		Duration:   1,
		UpdateRate: 30,
		Encode: func(s encoder.Settings, frames <-chan *encoder.Frame) error {
			t.Fatal("encoder must not start")
			return nil
		},
	}
	assert.ErrorContains(t, rec.Run(context.Background()), "offscreen target")
}
