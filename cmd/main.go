package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/hellotriangle/encoder"
	"github.com/richinsley/hellotriangle/gldevice"
	"github.com/richinsley/hellotriangle/glfwcontext"
	options "github.com/richinsley/hellotriangle/options"
	renderer "github.com/richinsley/hellotriangle/renderer"
	"github.com/richinsley/hellotriangle/scene"
	"github.com/richinsley/hellotriangle/shader"
	"github.com/richinsley/hellotriangle/translator"
)

func init() {
	runtime.LockOSThread()
}

func loadSources(opts *options.TriangleOptions) (shader.Sources, error) {
	sources, err := shader.LoadSources(*opts.VertexShader, *opts.FragmentShader)
	if err != nil {
		return shader.Sources{}, err
	}
	if !*opts.WebGL {
		return sources, nil
	}
	log.Println("Translating WebGL2 shaders to GLSL 4.10...")
	return translator.TranslateAll(sources)
}

func run(ctx context.Context, opts *options.TriangleOptions) error {
	// Shader files are read before any window or GL state exists.
	sources, err := loadSources(opts)
	if err != nil {
		return err
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	record := *opts.Mode == options.ModeRecord
	win, err := glfwcontext.New(opts, !record)
	if err != nil {
		return fmt.Errorf("failed to initialize glfw context: %w", err)
	}
	defer win.Shutdown()
	win.MakeCurrent()
	win.SetVSync(*opts.VSync && !record)

	dev, err := gldevice.New()
	if err != nil {
		return err
	}
	defer dev.Destroy()
	log.Printf("OpenGL version: %s", dev.Version())

	r := renderer.NewRenderer(dev, scene.NewTriangle())
	if err := r.Load(sources); err != nil {
		return err
	}
	defer r.Shutdown()

	if record {
		log.Println("Starting offscreen render loop...")
		rec := &renderer.Recorder{
			Renderer: r,
			Settings: encoder.Settings{
				Width:      *opts.Width,
				Height:     *opts.Height,
				FPS:        *opts.FPS,
				OutputFile: *opts.OutputFile,
				FFMPEGPath: *opts.FFMPEGPath,
				Codec:      *opts.Codec,
			},
			Duration:   *opts.Duration,
			UpdateRate: *opts.UpdateRate,
		}
		if err := rec.Run(ctx); err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	log.Println("Starting interactive render loop...")
	return renderer.NewLoop(win, r, *opts.UpdateRate).Run(ctx)
}

func main() {
	opts := options.Default()
	opts.Title = flag.String("title", *opts.Title, "Window title")
	opts.Width = flag.Int("width", *opts.Width, "Width of the window and of recorded output")
	opts.Height = flag.Int("height", *opts.Height, "Height of the window and of recorded output")
	opts.UpdateRate = flag.Float64("rate", *opts.UpdateRate, "Fixed update ticks per second")
	opts.VSync = flag.Bool("vsync", *opts.VSync, "Wait for vertical sync when presenting")
	opts.VertexShader = flag.String("vs", *opts.VertexShader, "Vertex shader source file")
	opts.FragmentShader = flag.String("fs", *opts.FragmentShader, "Fragment shader source file")
	opts.WebGL = flag.Bool("webgl", *opts.WebGL, "Shader files are WebGL2 (GLSL ES 3.00) and are translated before compiling")
	opts.Help = flag.Bool("help", false, "Show help message")
	opts.Mode = flag.String("mode", *opts.Mode, "Run mode: 'window' or 'record'")
	opts.Duration = flag.Float64("duration", *opts.Duration, "Duration to record in seconds")
	opts.FPS = flag.Int("fps", *opts.FPS, "Frames per second for recording")
	opts.OutputFile = flag.String("output", *opts.OutputFile, "Output file name for recording")
	opts.FFMPEGPath = flag.String("ffmpeg", *opts.FFMPEGPath, "Path to ffmpeg executable")
	opts.Codec = flag.String("codec", *opts.Codec, "Video codec for recording: 'h264' or 'hevc'")
	flag.Parse()

	if *opts.Help {
		fmt.Println("Hello triangle viewer/recorder")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil && ctx.Err() == nil {
		log.Fatalf("%v", err)
	}
}
