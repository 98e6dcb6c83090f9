package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "three-spheres", "Scene to render (see -list)")
	width := flag.Int("width", 0, "Image width in pixels (0 uses the scene's width)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 uses the scene's value)")
	depth := flag.Int("depth", 0, "Maximum bounce depth (0 uses the scene's value)")
	seed := flag.Int64("seed", 42, "Random seed for the scene layout and the render")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect)")
	out := flag.String("out", "", "Output file, '-' for stdout (default output/<scene>/render_<timestamp>.<format>)")
	format := flag.String("format", "ppm", "Output format: 'ppm' or 'png'")
	texture := flag.String("texture", "earthmap.jpg", "Image used by the earth texture")
	mesh := flag.String("mesh", "", "PLY file for the mesh scene")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes(os.Stdout)
		return
	}

	if *list {
		printScenes(os.Stdout)
		return
	}

	if *format != "ppm" && *format != "png" {
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		os.Exit(2)
	}

	// Logs go to stderr so the image can be streamed to stdout
	logger := renderer.NewDefaultLogger()
	renderer.LogSystemInfo(logger)

	opts := scene.Options{
		Sampler:     core.NewSeededSampler(*seed),
		TexturePath: *texture,
		MeshPath:    *mesh,
		Logger:      logger,
	}
	selectedScene, err := createScene(*sceneType, *width, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Using %s scene (%d primitives)\n", *sceneType, selectedScene.PrimitiveCount())

	config := renderConfig(selectedScene, *samples, *depth, *workers, *seed)
	raytracer, err := renderer.NewRaytracer(selectedScene, config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating raytracer: %v\n", err)
		os.Exit(1)
	}

	filename := outputPath(*out, *sceneType, *format, time.Now())
	w, closeOutput, err := openOutput(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := writeImage(ctx, raytracer, *format, w)
	if closeErr := closeOutput(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("Rendered %d samples at %.0f samples/sec\n", stats.TotalSamples, stats.SamplesPerSecond())
	if filename != "-" {
		logger.Printf("Render saved as %s\n", filename)
	}
}

// createScene builds the named scene, optionally re-sized to width
func createScene(sceneType string, width int, opts scene.Options) (*scene.Scene, error) {
	s, err := scene.New(sceneType, opts)
	if err != nil {
		return nil, err
	}
	if width > 0 {
		return s.WithWidth(width)
	}
	return s, nil
}

// renderConfig starts from the scene's sampling and applies non-zero overrides
func renderConfig(s *scene.Scene, samples, depth, workers int, seed int64) renderer.RenderConfig {
	sampling := s.Sampling()
	config := renderer.RenderConfig{
		SamplesPerPixel: sampling.SamplesPerPixel,
		MaxDepth:        sampling.MaxDepth,
		NumWorkers:      workers,
		Seed:            seed,
	}
	if samples > 0 {
		config.SamplesPerPixel = samples
	}
	if depth > 0 {
		config.MaxDepth = depth
	}
	return config
}

// outputPath picks the file to write, defaulting to a timestamped file per scene
func outputPath(out, sceneType, format string, now time.Time) string {
	if out != "" {
		return out
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneType, fmt.Sprintf("render_%s.%s", timestamp, format))
}

// openOutput opens filename for writing; "-" means stdout
func openOutput(filename string) (io.Writer, func() error, error) {
	if filename == "-" {
		buffered := bufio.NewWriter(os.Stdout)
		return buffered, buffered.Flush, nil
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

// writeImage renders and encodes the image. PPM rows stream as they complete.
func writeImage(ctx context.Context, rt *renderer.Raytracer, format string, w io.Writer) (renderer.RenderStats, error) {
	switch format {
	case "ppm":
		ppm, err := renderer.NewPPMWriter(w, rt.Width(), rt.Height())
		if err != nil {
			return renderer.RenderStats{}, err
		}
		stats, err := rt.Render(ctx, ppm)
		if err != nil {
			return stats, err
		}
		return stats, ppm.Close()
	case "png":
		buffer := renderer.NewImageBuffer(rt.Width(), rt.Height())
		stats, err := rt.Render(ctx, buffer)
		if err != nil {
			return stats, err
		}
		return stats, buffer.WritePNG(w)
	default:
		return renderer.RenderStats{}, errors.New("unknown format: " + format)
	}
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, group := range scene.ListScenes() {
		fmt.Fprintf(w, "  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "    %-18s %s\n", info.ID, info.Description)
		}
	}
}
