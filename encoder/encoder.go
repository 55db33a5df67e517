package encoder

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered video frame's data, ready for encoding.
// Pixels are bottom-up RGBA8 as read back from OpenGL.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Settings describe the raw input stream and the encoded output.
type Settings struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFMPEGPath string
	Codec      string // "h264" or "hevc"
}

// FrameSize is the byte length of one RGBA frame.
func (s Settings) FrameSize() int {
	return s.Width * s.Height * 4
}

// InputArgs describe frames written to ffmpeg's stdin.
func InputArgs(s Settings) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", s.Width, s.Height),
		"r":       s.FPS,
	}
}

// OutputArgs select an encoder for the codec and flip the bottom-up OpenGL rows.
func OutputArgs(s Settings) ffmpeg.KwArgs {
	outputArgs := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}

	switch runtime.GOOS {
	case "darwin":
		if s.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if s.Codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}

	if s.Codec == "hevc" && strings.HasSuffix(s.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return outputArgs
}

// WriteFrames copies frames to w in arrival order until frames is closed.
// Every frame must hold exactly frameSize bytes.
func WriteFrames(w io.Writer, frames <-chan *Frame, frameSize int) (int, error) {
	written := 0
	for frame := range frames {
		if len(frame.Pixels) != frameSize {
			return written, fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), frameSize)
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			return written, fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
		written++
	}
	return written, nil
}

// drain discards remaining frames so the producer never blocks after a failure.
func drain(frames <-chan *Frame) {
	for range frames {
	}
}

// Run starts ffmpeg and feeds it frames until the channel is closed.
func Run(s Settings, frames <-chan *Frame) error {
	pipeReader, pipeWriter := io.Pipe()

	ffmpegCmd := ffmpeg.Input("pipe:", InputArgs(s)).
		Output(s.OutputFile, OutputArgs(s)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if s.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(s.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblocks WriteFrames if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	written, werr := WriteFrames(pipeWriter, frames, s.FrameSize())
	pipeWriter.Close()
	if werr != nil {
		go drain(frames)
	}

	if err := <-errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	if werr != nil {
		return werr
	}
	log.Printf("Encoded %d frames to %s", written, s.OutputFile)
	return nil
}
