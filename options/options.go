package options

import (
	"fmt"
)

const (
	ModeWindow = "window"
	ModeRecord = "record"
)

type TriangleOptions struct {
	Title          *string
	Width          *int
	Height         *int
	UpdateRate     *float64 // Fixed update ticks per second
	VSync          *bool
	VertexShader   *string // Path to the vertex stage source
	FragmentShader *string // Path to the fragment stage source
	WebGL          *bool   // Sources are WebGL2 (ESSL 3.00) and must be translated before compiling
	Help           *bool
	Mode           *string
	// Record mode options
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
}

// Default returns options populated with the values the viewer runs with when no flags are given.
func Default() *TriangleOptions {
	title := "Hello OpenTK"
	width, height := 640, 480
	rate := 30.0
	vsync := true
	vs, fs := "vs.glsl", "fs.glsl"
	webgl := false
	help := false
	mode := ModeWindow
	duration := 5.0
	fps := 30
	output := "triangle.mp4"
	ffmpegPath := ""
	codec := "h264"
	return &TriangleOptions{
		Title:          &title,
		Width:          &width,
		Height:         &height,
		UpdateRate:     &rate,
		VSync:          &vsync,
		VertexShader:   &vs,
		FragmentShader: &fs,
		WebGL:          &webgl,
		Help:           &help,
		Mode:           &mode,
		Duration:       &duration,
		FPS:            &fps,
		OutputFile:     &output,
		FFMPEGPath:     &ffmpegPath,
		Codec:          &codec,
	}
}

// Validate checks the option values that would otherwise fail deep inside GL or ffmpeg.
func (o *TriangleOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.UpdateRate <= 0 {
		return fmt.Errorf("update rate must be positive, got %v", *o.UpdateRate)
	}
	if *o.VertexShader == "" || *o.FragmentShader == "" {
		return fmt.Errorf("both vertex and fragment shader paths are required")
	}

	switch *o.Mode {
	case ModeWindow:
		return nil
	case ModeRecord:
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", *o.Mode, ModeWindow, ModeRecord)
	}

	if *o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", *o.FPS)
	}
	if *o.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", *o.Duration)
	}
	if *o.OutputFile == "" {
		return fmt.Errorf("record mode requires an output file")
	}
	if *o.Codec != "h264" && *o.Codec != "hevc" {
		return fmt.Errorf("unsupported codec %q", *o.Codec)
	}
	return nil
}
