package renderer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/richinsley/hellotriangle/encoder"
)

// Recorder renders a fixed number of frames into an offscreen target with a
// simulated clock and hands them to an encoder.
type Recorder struct {
	Renderer   *Renderer
	Settings   encoder.Settings
	Duration   float64
	UpdateRate float64
	// Encode consumes frames until the channel is closed. It defaults to
	// encoder.Run.
	Encode func(s encoder.Settings, frames <-chan *encoder.Frame) error
}

// FrameCount returns how many frames a recording of Duration seconds holds.
func (rec *Recorder) FrameCount() int {
	return int(rec.Duration * float64(rec.Settings.FPS))
}

// Run renders every frame, streaming it to the encoder, and waits for the
// encoder to finish.
func (rec *Recorder) Run(ctx context.Context) error {
	encode := rec.Encode
	if encode == nil {
		encode = encoder.Run
	}

	r := rec.Renderer
	width, height := rec.Settings.Width, rec.Settings.Height
	target, err := r.device.CreateRenderTarget(width, height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	defer r.device.DeleteRenderTarget(target)
	r.device.BindRenderTarget(target)
	defer r.device.BindRenderTarget(0)
	r.Resize(width, height)

	frameChan := make(chan *encoder.Frame, 3)
	encoderDone := make(chan error, 1)
	go func() {
		encoderDone <- encode(rec.Settings, frameChan)
	}()

	total := rec.FrameCount()
	frameTime := 1.0 / float64(rec.Settings.FPS)
	step := 1.0 / rec.UpdateRate
	lag := step
	start := time.Now()

	var renderErr error
	for i := 0; i < total; i++ {
		if renderErr = ctx.Err(); renderErr != nil {
			break
		}

		for n := 0; lag >= step && n < maxUpdatesPerFrame; n++ {
			r.Update()
			lag -= step
		}
		r.Render()
		lag += frameTime

		frame := &encoder.Frame{
			Pixels: make([]byte, rec.Settings.FrameSize()),
			PTS:    int64(i),
		}
		r.device.ReadPixels(width, height, frame.Pixels)

		select {
		case frameChan <- frame:
		case err := <-encoderDone:
			if err == nil {
				err = fmt.Errorf("encoder exited after %d of %d frames", i, total)
			}
			return err
		}

		if (i+1)%(rec.Settings.FPS*5) == 0 {
			log.Printf("Recorded %d/%d frames", i+1, total)
		}
	}
	close(frameChan)

	if err := <-encoderDone; err != nil {
		return fmt.Errorf("encoder failed: %w", err)
	}
	if renderErr != nil {
		return renderErr
	}
	log.Printf("Recorded %d frames in %v", total, time.Since(start).Round(time.Millisecond))
	return nil
}
