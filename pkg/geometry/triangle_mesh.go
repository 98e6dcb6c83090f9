package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH (Bounding Volume Hierarchy) for fast intersection tests
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Materials []material.Material // Optional per-triangle materials
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices in faces forms a triangle; options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3
	if options != nil && options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
	}

	triangles := make([]Shape, numTriangles)
	for i := 0; i < numTriangles; i++ {
		idx := faces[i*3 : i*3+3]
		for _, v := range idx {
			if v < 0 || v >= len(vertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range [0,%d)", i, v, len(vertices))
			}
		}

		triangleMaterial := mat
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		v0, v1, v2 := vertices[idx[0]], vertices[idx[1]], vertices[idx[2]]
		triangles[i] = NewTriangle(v0, v1.Subtract(v0), v2.Subtract(v0), triangleMaterial)
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, rayT, sampler)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
