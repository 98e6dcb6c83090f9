package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrEmptyScene is returned when building a scene without any shapes
var ErrEmptyScene = errors.New("scene has no shapes")

// SamplingConfig contains the scene's recommended rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate reports non-positive sample or depth counts
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Scene is a frozen scene, safe to share across render workers. It has no mutators.
type Scene struct {
	world        geometry.Shape
	background   core.Vec3
	camera       *renderer.Camera
	sampling     SamplingConfig
	primitives   int
	cameraConfig renderer.CameraConfig
}

// World returns the root shape, a BVH unless the builder disabled it
func (s *Scene) World() geometry.Shape { return s.world }

// Background returns the radiance of rays that escape the scene
func (s *Scene) Background() core.Vec3 { return s.background }

// Camera returns the scene camera
func (s *Scene) Camera() *renderer.Camera { return s.camera }

// Sampling returns the recommended sampling configuration
func (s *Scene) Sampling() SamplingConfig { return s.sampling }

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int { return s.primitives }

// WithCamera returns a copy of the scene viewed through a different camera.
// The world is shared, not copied.
func (s *Scene) WithCamera(config renderer.CameraConfig) (*Scene, error) {
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return nil, err
	}
	copied := *s
	copied.camera = camera
	copied.cameraConfig = config
	return &copied, nil
}

// WithWidth returns a copy of the scene rendered at a different image width
func (s *Scene) WithWidth(width int) (*Scene, error) {
	config := s.cameraConfig
	config.Width = width
	return s.WithCamera(config)
}

// Builder assembles a scene. It is not safe for concurrent use.
type Builder struct {
	shapes       []geometry.Shape
	cameraConfig renderer.CameraConfig
	background   core.Vec3
	sampling     SamplingConfig
	useBVH       bool
}

// NewBuilder creates a builder with a default camera, a sky-blue background and a BVH
func NewBuilder() *Builder {
	return &Builder{
		cameraConfig: renderer.DefaultCameraConfig(),
		background:   core.NewVec3(0.70, 0.80, 1.00),
		sampling:     DefaultSamplingConfig(),
		useBVH:       true,
	}
}

// Add appends shapes to the scene
func (b *Builder) Add(shapes ...geometry.Shape) *Builder {
	b.shapes = append(b.shapes, shapes...)
	return b
}

// SetCamera sets the camera configuration
func (b *Builder) SetCamera(config renderer.CameraConfig) *Builder {
	b.cameraConfig = config
	return b
}

// SetBackground sets the color returned for rays that hit nothing
func (b *Builder) SetBackground(color core.Vec3) *Builder {
	b.background = color
	return b
}

// SetSampling sets the recommended sampling configuration
func (b *Builder) SetSampling(config SamplingConfig) *Builder {
	b.sampling = config
	return b
}

// UseBVH selects a BVH (the default) or a flat list as the scene root
func (b *Builder) UseBVH(enabled bool) *Builder {
	b.useBVH = enabled
	return b
}

// Build validates the configuration and freezes the scene
func (b *Builder) Build() (*Scene, error) {
	if len(b.shapes) == 0 {
		return nil, ErrEmptyScene
	}
	if err := b.sampling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	camera, err := renderer.NewCamera(b.cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}

	// Copy so later Add calls cannot reach the frozen scene
	shapes := make([]geometry.Shape, len(b.shapes))
	copy(shapes, b.shapes)

	var world geometry.Shape
	if b.useBVH {
		world = geometry.NewBVH(shapes)
	} else {
		world = geometry.NewList(shapes...)
	}

	primitives := 0
	for _, shape := range shapes {
		primitives += countPrimitivesInShape(shape)
	}

	return &Scene{
		world:        world,
		background:   b.background,
		camera:       camera,
		sampling:     b.sampling,
		primitives:   primitives,
		cameraConfig: b.cameraConfig,
	}, nil
}

// countPrimitivesInShape counts primitives in a single shape, handling aggregates
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		return obj.TriangleCount()
	case *geometry.List:
		count := 0
		for _, child := range obj.Shapes {
			count += countPrimitivesInShape(child)
		}
		return count
	case *geometry.BVH:
		return obj.Stats().TotalShapes
	default:
		return 1
	}
}
