package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuad_Hit_BasicIntersection(t *testing.T) {
	// Unit quad in the XY plane at z=0
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), &DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0.25, 0.75, 1), core.NewVec3(0, 0, -1))

	hit, isHit := quad.Hit(ray, testRayT, testSampler)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Errorf("Expected t=1, got %v", hit.T)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, 1)) || !hit.FrontFace {
		t.Errorf("Expected front-facing normal (0,0,1), got %v front=%v", hit.Normal, hit.FrontFace)
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected UV (0.25, 0.75), got %v", hit.UV)
	}
}

func TestPlanar_Acceptance(t *testing.T) {
	q := core.NewVec3(0, 0, 0)
	u := core.NewVec3(1, 0, 0)
	v := core.NewVec3(0, 1, 0)

	quad := NewQuad(q, u, v, &DummyMaterial{})
	triangle := NewTriangle(q, u, v, &DummyMaterial{})
	disk := NewDisk(q, u, v, 0.5, &DummyMaterial{})

	tests := []struct {
		name     string
		shape    Shape
		x, y     float64
		expected bool
	}{
		{"quad center", quad, 0.5, 0.5, true},
		{"quad corner", quad, 1.0, 1.0, true},
		{"quad outside", quad, 1.1, 0.5, false},
		{"quad negative", quad, -0.1, 0.5, false},
		{"triangle inside", triangle, 0.2, 0.2, true},
		{"triangle beyond hypotenuse", triangle, 0.6, 0.6, false},
		{"triangle on edge", triangle, 0.0, 0.5, false},
		{"disk center", disk, 0, 0, true},
		{"disk inside negative quadrant", disk, -0.3, -0.3, true},
		{"disk on rim", disk, 0.5, 0, true},
		{"disk outside", disk, 0.4, 0.4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(tt.x, tt.y, 2), core.NewVec3(0, 0, -1))
			_, isHit := tt.shape.Hit(ray, testRayT, testSampler)
			if isHit != tt.expected {
				t.Errorf("Expected hit=%v at (%v, %v), got %v", tt.expected, tt.x, tt.y, isHit)
			}
		})
	}
}

func TestPlanar_ParallelRayMisses(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), &DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(1, 0, 0))

	if _, isHit := quad.Hit(ray, testRayT, testSampler); isHit {
		t.Error("Expected parallel ray to miss")
	}
}

func TestPlanar_BackFace(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), &DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))

	hit, isHit := quad.Hit(ray, testRayT, testSampler)
	if !isHit {
		t.Fatal("Expected hit from behind")
	}
	if hit.FrontFace {
		t.Error("Expected back face")
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected normal flipped to (0,0,-1), got %v", hit.Normal)
	}
}

func TestPlanar_BoundingBoxIsPadded(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 3), &DummyMaterial{})
	box := quad.BoundingBox()

	if box.Y.Size() <= 0 {
		t.Errorf("Expected flat axis to be padded, got size %v", box.Y.Size())
	}
	if !box.Max().Subtract(core.NewVec3(2, box.Y.Max, 3)).NearZero() {
		t.Errorf("Unexpected box max %v", box.Max())
	}
}

func TestPlanar_DegenerateSpanNeverHits(t *testing.T) {
	// u and v are parallel, so the plane is undefined
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), &DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0.5, 0, 1), core.NewVec3(0, 0, -1))

	if _, isHit := quad.Hit(ray, testRayT, testSampler); isHit {
		t.Error("Expected degenerate quad to report no hit")
	}
	if quad.BoundingBox().IsEmpty() {
		t.Error("Expected a padded, non-empty bounding box")
	}
}

func TestDisk_BoundingBox(t *testing.T) {
	disk := NewDisk(core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), 2, &DummyMaterial{})
	box := disk.BoundingBox()

	if math.Abs(box.X.Min-(-1)) > 1e-9 || math.Abs(box.X.Max-3) > 1e-9 {
		t.Errorf("Expected X in [-1, 3], got %v", box.X)
	}
	if math.Abs(box.Z.Min-(-2)) > 1e-9 || math.Abs(box.Z.Max-2) > 1e-9 {
		t.Errorf("Expected Z in [-2, 2], got %v", box.Z)
	}
}

func TestTriangle_BoundingBoxCoversOnlyVertices(t *testing.T) {
	// Vertices (1,0,0), (0,1,0) and (0,0,1); q+u+v = (-1,1,1) is not a vertex
	tri := NewTriangle(core.NewVec3(1, 0, 0), core.NewVec3(-1, 1, 0), core.NewVec3(-1, 0, 1), &DummyMaterial{})
	box := tri.BoundingBox()

	for axis := 0; axis < 3; axis++ {
		interval := box.AxisInterval(axis)
		if math.Abs(interval.Min) > 1e-9 || math.Abs(interval.Max-1) > 1e-9 {
			t.Errorf("Axis %d: expected [0, 1], got %v", axis, interval)
		}
	}

	quad := NewQuad(core.NewVec3(1, 0, 0), core.NewVec3(-1, 1, 0), core.NewVec3(-1, 0, 1), &DummyMaterial{})
	if math.Abs(quad.BoundingBox().X.Min-(-1)) > 1e-9 {
		t.Errorf("Expected quad to reach x=-1, got %v", quad.BoundingBox().X)
	}
}
