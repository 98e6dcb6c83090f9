package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellWalls returns the five walls of the Cornell box around a ceiling light
func cornellWalls(light geometry.Shape) []geometry.Shape {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []geometry.Shape{
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green), // left
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red),         // right
		light,
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),                      // floor
		geometry.NewQuad(core.NewVec3(boxSize, boxSize, boxSize), core.NewVec3(-boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), white), // ceiling
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),                // back
	}
}

// cornellBlocks returns the tall and short boxes, rotated and moved into place
func cornellBlocks(mat material.Material) (tall, short geometry.Shape) {
	tall = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	short = geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))
	return tall, short
}

func cornellBuilder() *Builder {
	camera := lookAt(core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0), 600, 1.0, 40)
	return NewBuilder().
		SetCamera(camera).
		SetBackground(core.NewVec3(0, 0, 0)).
		SetSampling(SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50})
}

// NewCornellScene creates a classic Cornell box with two rotated white boxes
func NewCornellScene(opts Options) (*Scene, error) {
	light := geometry.NewQuad(
		core.NewVec3(343, 554, 332),
		core.NewVec3(-130, 0, 0),
		core.NewVec3(0, 0, -105),
		material.NewDiffuseLight(core.NewVec3(15, 15, 15)),
	)

	tall, short := cornellBlocks(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))

	return cornellBuilder().
		Add(cornellWalls(light)...).
		Add(tall, short).
		Build()
}

// NewCornellSmokeScene replaces the Cornell boxes with blocks of dark smoke and white fog
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	light := geometry.NewQuad(
		core.NewVec3(113, 554, 127),
		core.NewVec3(330, 0, 0),
		core.NewVec3(0, 0, 305),
		material.NewDiffuseLight(core.NewVec3(7, 7, 7)),
	)

	tall, short := cornellBlocks(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))

	return cornellBuilder().
		Add(cornellWalls(light)...).
		Add(
			geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
			geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
		).
		Build()
}

// NewSimpleLightScene creates marble spheres lit only by a quad and a sphere light
func NewSimpleLightScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, opts.Sampler))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	return NewBuilder().
		SetCamera(lookAt(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 400, 16.0/9.0, 20)).
		SetBackground(core.NewVec3(0, 0, 0)).
		Add(
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
			geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
			geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		).
		Build()
}
