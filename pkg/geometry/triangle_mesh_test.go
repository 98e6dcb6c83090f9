package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func tetrahedron() ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	faces := []int{
		0, 2, 1,
		0, 1, 3,
		0, 3, 2,
		1, 2, 3,
	}
	return vertices, faces
}

func TestTriangleMesh_Creation(t *testing.T) {
	vertices, faces := tetrahedron()
	mesh, err := NewTriangleMesh(vertices, faces, &DummyMaterial{}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mesh.TriangleCount() != 4 {
		t.Errorf("Expected 4 triangles, got %d", mesh.TriangleCount())
	}

	box := mesh.BoundingBox()
	if box.Min().Length() > 1e-3 || box.Max().Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-3 {
		t.Errorf("Unexpected mesh box %v..%v", box.Min(), box.Max())
	}
}

func TestTriangleMesh_Hit(t *testing.T) {
	vertices, faces := tetrahedron()
	mesh, err := NewTriangleMesh(vertices, faces, &DummyMaterial{}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Down onto the z=0 face from below
	hit, isHit := mesh.Hit(core.NewRay(core.NewVec3(0.2, 0.2, -1), core.NewVec3(0, 0, 1)), testRayT, testSampler)
	if !isHit {
		t.Fatal("Expected hit on the base triangle")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected t=1, got %v", hit.T)
	}

	if _, isHit := mesh.Hit(core.NewRay(core.NewVec3(2, 2, -1), core.NewVec3(0, 0, 1)), testRayT, testSampler); isHit {
		t.Error("Expected miss outside the mesh")
	}
}

func TestTriangleMesh_PerTriangleMaterials(t *testing.T) {
	vertices, faces := tetrahedron()
	mats := []material.Material{
		&DummyMaterial{ID: 0}, &DummyMaterial{ID: 1}, &DummyMaterial{ID: 2}, &DummyMaterial{ID: 3},
	}
	mesh, err := NewTriangleMesh(vertices, faces, nil, &TriangleMeshOptions{Materials: mats})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hit, isHit := mesh.Hit(core.NewRay(core.NewVec3(0.2, 0.2, -1), core.NewVec3(0, 0, 1)), testRayT, testSampler)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if id := hit.Material.(*DummyMaterial).ID; id != 0 {
		t.Errorf("Expected material of face 0, got %d", id)
	}
}

func TestTriangleMesh_ErrorHandling(t *testing.T) {
	vertices, _ := tetrahedron()

	tests := []struct {
		name    string
		faces   []int
		options *TriangleMeshOptions
	}{
		{"face count not multiple of 3", []int{0, 1}, nil},
		{"index out of range", []int{0, 1, 7}, nil},
		{"negative index", []int{0, -1, 2}, nil},
		{"material count mismatch", []int{0, 1, 2}, &TriangleMeshOptions{Materials: []material.Material{&DummyMaterial{}, &DummyMaterial{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTriangleMesh(vertices, tt.faces, &DummyMaterial{}, tt.options); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
