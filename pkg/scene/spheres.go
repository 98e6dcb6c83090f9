package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// lookAt builds a pinhole camera config with the Y axis up
func lookAt(from, at core.Vec3, width int, aspect, vfov float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      from,
		LookAt:        at,
		Up:            core.NewVec3(0, 1, 0),
		Width:         width,
		AspectRatio:   aspect,
		VFov:          vfov,
		FocusDistance: 10,
	}
}

// groundCamera is the camera shared by the sphere scenes
func groundCamera() renderer.CameraConfig {
	return lookAt(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 400, 16.0/9.0, 20)
}

// NewThreeSpheresScene creates a glass and a metal sphere resting on a huge diffuse sphere
func NewThreeSpheresScene(opts Options) (*Scene, error) {
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	glass := material.NewDielectric(1.5)
	metal := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)

	return NewBuilder().
		SetCamera(groundCamera()).
		SetSampling(SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}).
		Add(
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
			geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass),
			geometry.NewSphere(core.NewVec3(4, 1, 0), 1, metal),
		).
		Build()
}

// NewBouncingSpheresScene creates a checkered ground covered in small random spheres.
// The diffuse ones move upward during the shutter interval.
func NewBouncingSpheresScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	s := opts.Sampler
	b := NewBuilder()

	checker := material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	b.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	for a := -11; a < 11; a++ {
		for c := -11; c < 11; c++ {
			chooseMat := s.Get1D()
			center := core.NewVec3(float64(a)+0.9*s.Get1D(), 0.2, float64(c)+0.9*s.Get1D())

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(s, 0, 1).MultiplyVec(core.RandomVec3(s, 0, 1))
				center2 := center.Add(core.NewVec3(0, core.RandomRange(s, 0, 0.5), 0))
				b.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(s, 0.5, 1)
				fuzz := core.RandomRange(s, 0, 0.5)
				b.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				b.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	b.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	camera := groundCamera()
	camera.DefocusAngle = 0.6

	return b.SetCamera(camera).
		SetSampling(SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}).
		Build()
}

// NewCheckeredSpheresScene creates two large spheres sharing one checker texture
func NewCheckeredSpheresScene(opts Options) (*Scene, error) {
	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)

	return NewBuilder().
		SetCamera(groundCamera()).
		Add(
			geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
			geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
		).
		Build()
}

// NewPerlinSpheresScene creates a marble sphere on a marble ground
func NewPerlinSpheresScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.Sampler))

	return NewBuilder().
		SetCamera(groundCamera()).
		Add(
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		).
		Build()
}

// NewEarthScene creates a globe wrapped in the image at opts.TexturePath
func NewEarthScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	surface := material.NewTexturedLambertian(earthTexture(opts))

	return NewBuilder().
		SetCamera(lookAt(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, 0), 400, 16.0/9.0, 20)).
		Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, surface)).
		Build()
}

// earthTexture loads the globe image, falling back to an empty texture that renders cyan
func earthTexture(opts Options) *material.ImageTexture {
	if opts.TexturePath == "" {
		opts.Logger.Printf("No texture path given, rendering the globe in cyan\n")
		return material.NewImageTexture(0, 0, nil)
	}
	texture, err := loaders.LoadImageTexture(opts.TexturePath)
	if err != nil {
		opts.Logger.Printf("Could not load texture %s: %v\n", opts.TexturePath, err)
		return material.NewImageTexture(0, 0, nil)
	}
	return texture
}
