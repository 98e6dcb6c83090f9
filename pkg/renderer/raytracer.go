package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// ErrInvalidConfig is wrapped by every configuration error reported before rendering starts
var ErrInvalidConfig = errors.New("invalid render configuration")

// rowSeedStride spreads per-row seeds apart
const rowSeedStride = 7919

// RenderConfig contains rendering configuration
type RenderConfig struct {
	SamplesPerPixel int   // Number of camera rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = logical CPU count)
	Seed            int64 // Base seed; the image is a pure function of scene, config and seed
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate reports configuration errors wrapped in ErrInvalidConfig
func (c RenderConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Scene is what the raytracer needs from a frozen scene
type Scene interface {
	integrator.Scene
	Camera() *Camera
}

// Raytracer renders a frozen scene into an ordered stream of rows
type Raytracer struct {
	scene      Scene
	camera     *Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer validates the configuration and creates a raytracer
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if scene == nil || scene.Camera() == nil {
		return nil, fmt.Errorf("%w: scene has no camera", ErrInvalidConfig)
	}
	if scene.World() == nil {
		return nil, fmt.Errorf("%w: scene has no world", ErrInvalidConfig)
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = DefaultNumWorkers()
	}
	if logger == nil {
		logger = NewNopLogger()
	}

	return &Raytracer{
		scene:      scene,
		camera:     scene.Camera(),
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}, nil
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.camera.Width() }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.camera.Height() }

// rowSeed derives the sampler seed for row y, independent of which worker renders it
func rowSeed(seed int64, y int) int64 {
	return seed + int64(y)*rowSeedStride + 1
}

// RenderRow renders row y with its own deterministic sampler, returning averaged linear colors
func (rt *Raytracer) RenderRow(y int) ([]core.Vec3, int) {
	sampler := core.NewSeededSampler(rowSeed(rt.config.Seed, y))
	width := rt.camera.Width()
	spp := rt.config.SamplesPerPixel
	scale := 1.0 / float64(spp)

	pixels := make([]core.Vec3, width)
	for x := 0; x < width; x++ {
		var accum core.Vec3
		for s := 0; s < spp; s++ {
			ray := rt.camera.GetRay(x, y, sampler)
			accum = accum.Add(rt.integrator.RayColor(ray, rt.scene, sampler))
		}
		pixels[x] = accum.Multiply(scale)
	}
	return pixels, width * spp
}

// Render traces every row in parallel and hands them to out strictly in row order.
// Finished rows that arrive early wait in a reorder buffer.
func (rt *Raytracer) Render(ctx context.Context, out RowWriter) (RenderStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	height := rt.camera.Height()
	stats := RenderStats{
		Width:           rt.camera.Width(),
		Height:          height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumWorkers:      rt.config.NumWorkers,
	}
	start := time.Now()

	pool := NewWorkerPool(rt.config.NumWorkers, height, rt.RenderRow)
	pool.Start(ctx)
	for y := 0; y < height; y++ {
		pool.SubmitTask(RowTask{Row: y})
	}
	go pool.Stop()

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d, %d workers\n",
		stats.Width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, rt.config.NumWorkers)

	pending := make(map[int][]core.Vec3)
	next := 0
	progressStep := max(1, height/10)
	for next < height {
		result, ok := pool.GetResult()
		if !ok {
			return stats, fmt.Errorf("render stopped after %d of %d rows", next, height)
		}
		if result.Err != nil {
			return stats, fmt.Errorf("row %d: %w", result.Row, result.Err)
		}
		stats.TotalSamples += result.Samples
		pending[result.Row] = result.Pixels

		for pixels, ready := pending[next]; ready; pixels, ready = pending[next] {
			if err := out.WriteRow(next, pixels); err != nil {
				return stats, err
			}
			delete(pending, next)
			next++
			if next%progressStep == 0 || next == height {
				rt.logger.Printf("Scanlines remaining: %d\n", height-next)
			}
		}
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%.0f samples/s)\n", stats.Duration, stats.SamplesPerSecond())
	return stats, nil
}
