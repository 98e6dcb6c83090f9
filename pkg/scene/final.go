package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewFinalScene combines every shape, material and texture in one scene
func NewFinalScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	s := opts.Sampler
	b := NewBuilder().
		SetCamera(lookAt(core.NewVec3(478, 278, -600), core.NewVec3(278, 278, 0), 800, 1.0, 40)).
		SetBackground(core.NewVec3(0, 0, 0)).
		SetSampling(SamplingConfig{SamplesPerPixel: 250, MaxDepth: 40})

	// Floor of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	floor := geometry.NewList()
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomRange(s, 1, 101)
			floor.Add(geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	b.Add(geometry.NewBVHFromList(floor))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	b.Add(geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	b.Add(geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	b.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass ball filled with blue subsurface haze
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	b.Add(boundary, geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	b.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	b.Add(
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earthTexture(opts))),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(0.2, s))),
	)

	// Rotated cube of small spheres
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := geometry.NewList()
	for i := 0; i < 1000; i++ {
		cluster.Add(geometry.NewSphere(core.RandomVec3(s, 0, 165), 10, white))
	}
	b.Add(geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVHFromList(cluster), 15),
		core.NewVec3(-100, 270, 395),
	))

	return b.Build()
}
