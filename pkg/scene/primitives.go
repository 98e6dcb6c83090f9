package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuadsScene creates five colored quads facing a camera on the Z axis
func NewQuadsScene(opts Options) (*Scene, error) {
	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	return NewBuilder().
		SetCamera(lookAt(core.NewVec3(0, 0, 9), core.NewVec3(0, 0, 0), 400, 1.0, 80)).
		Add(
			geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
			geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
			geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
			geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
			geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
		).
		Build()
}

// NewPrimitivesScene shows every planar shape, triangle meshes and a mixed material
func NewPrimitivesScene(opts Options) (*Scene, error) {
	floor := material.NewTexturedLambertian(
		material.NewCheckerColors(0.5, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.3, 0.3, 0.3)),
	)
	redMetal := material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.1)
	blue := material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8))
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05)
	// Half glass, half diffuse orange
	frosted := material.NewMix(material.NewDielectric(1.5), material.NewLambertian(core.NewVec3(0.9, 0.5, 0.1)), 0.5)

	pyramid, err := pyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0, blue)
	if err != nil {
		return nil, err
	}
	icosahedron, err := icosahedronMesh(core.NewVec3(0, 0, 0), 0.8, gold)
	if err != nil {
		return nil, err
	}

	return NewBuilder().
		SetCamera(lookAt(core.NewVec3(0, 2, 6), core.NewVec3(0, 1, 0), 600, 16.0/9.0, 45)).
		Add(
			geometry.NewQuad(core.NewVec3(-10, 0, -10), core.NewVec3(20, 0, 0), core.NewVec3(0, 0, 20), floor),
			geometry.NewRotateY(pyramid, 45),
			geometry.NewTranslate(geometry.NewRotateY(icosahedron, 60), core.NewVec3(2, 0.8, 0)),
			geometry.NewRotateY(geometry.NewBox(core.NewVec3(-2.5, 0, -0.5), core.NewVec3(-1.5, 1, 0.5), redMetal), 30),
			geometry.NewDisk(core.NewVec3(-1, 2.5, -2), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 0.7, gold),
			geometry.NewTriangle(core.NewVec3(1, 1.8, -2), core.NewVec3(1.2, 0, 0), core.NewVec3(0.6, 1.2, 0), redMetal),
			geometry.NewSphere(core.NewVec3(-0.9, 0.4, 1.5), 0.4, frosted),
			geometry.NewSphere(core.NewVec3(1.5, 3.5, 1), 0.5, material.NewDiffuseLight(core.NewVec3(6, 6, 6))),
		).
		Build()
}

// NewMeshScene frames a PLY mesh on a checker floor. Without a mesh file a pyramid stands in.
func NewMeshScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()
	surface := material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))

	var mesh *geometry.TriangleMesh
	var err error
	if opts.MeshPath != "" {
		mesh, err = loaders.LoadPLYMesh(opts.MeshPath, surface)
	} else {
		mesh, err = pyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0, surface)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}
	opts.Logger.Printf("Mesh has %d triangles\n", mesh.TriangleCount())

	box := mesh.BoundingBox()
	center := box.Center()
	size := box.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))

	floor := material.NewTexturedLambertian(
		material.NewCheckerColors(extent/4, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.1)),
	)
	floorY := box.Min().Y
	floorCorner := core.NewVec3(center.X-5*extent, floorY, center.Z-5*extent)

	from := center.Add(core.NewVec3(0, 0.4*extent, 2.5*extent))
	camera := lookAt(from, center, 400, 16.0/9.0, 35)
	camera.FocusDistance = from.Subtract(center).Length()

	return NewBuilder().
		SetCamera(camera).
		Add(
			mesh,
			geometry.NewQuad(floorCorner, core.NewVec3(10*extent, 0, 0), core.NewVec3(0, 0, 10*extent), floor),
		).
		Build()
}

// pyramidMesh creates a square pyramid standing upright around center
func pyramidMesh(center core.Vec3, baseSize, height float64, mat material.Material) (*geometry.TriangleMesh, error) {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		// Base
		0, 2, 1, 0, 3, 2,
		// Sides
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}

// icosahedronMesh creates a 20-sided polyhedron with its vertices at the given radius
func icosahedronMesh(center core.Vec3, radius float64, mat material.Material) (*geometry.TriangleMesh, error) {
	phi := math.Phi
	scale := radius / math.Sqrt(1+phi*phi)

	corners := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Vec3, len(corners))
	for i, c := range corners {
		vertices[i] = center.Add(c.Multiply(scale))
	}

	faces := []int{
		// Around vertex 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// Around vertex 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}
