package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DummyMaterial never scatters; tests use it to tag shapes
type DummyMaterial struct{ ID int }

func (d *DummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

var (
	testRayT    = core.NewInterval(0.001, math.Inf(1))
	testSampler = core.NewSeededSampler(42)
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, &DummyMaterial{})
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray, testRayT, testSampler); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_RoundTrip(t *testing.T) {
	for _, r := range []float64{0.5, 1, 3, 100} {
		sphere := NewSphere(core.NewVec3(0, 0, 0), r, &DummyMaterial{})
		ray := core.NewRay(core.NewVec3(0, 0, 2*r), core.NewVec3(0, 0, -1))

		hit, isHit := sphere.Hit(ray, testRayT, testSampler)
		if !isHit {
			t.Fatalf("radius %v: expected hit", r)
		}
		if math.Abs(hit.T-r) > 1e-9*r {
			t.Errorf("radius %v: expected t=%v, got %v", r, r, hit.T)
		}
		if !hit.Normal.Equals(core.NewVec3(0, 0, 1)) {
			t.Errorf("radius %v: expected normal (0,0,1), got %v", r, hit.Normal)
		}
		if !hit.FrontFace {
			t.Errorf("radius %v: expected front face", r)
		}
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, &DummyMaterial{})

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, testRayT, testSampler)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_FarRootWhenNearIsOutsideInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, &DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, core.NewInterval(1.5, 10), testSampler)
	if !isHit {
		t.Fatal("Expected the far root to be accepted")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %v", hit.T)
	}

	if _, isHit := sphere.Hit(ray, core.NewInterval(3.5, 10), testSampler); isHit {
		t.Error("Expected no hit when both roots lie outside the interval")
	}
}

func TestSphere_Hit_IntervalIsOpen(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, &DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// t=1 is the near root; an interval ending exactly there excludes it
	if _, isHit := sphere.Hit(ray, core.NewInterval(0.001, 1), testSampler); isHit {
		t.Error("Expected roots on the interval boundary to be rejected")
	}
}

func TestSphere_NegativeRadiusClamped(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), -5, &DummyMaterial{})
	if sphere.Radius != 0 {
		t.Errorf("Expected radius clamped to 0, got %v", sphere.Radius)
	}
	box := sphere.BoundingBox()
	for axis := 0; axis < 3; axis++ {
		if box.AxisInterval(axis).Size() <= 0 {
			t.Errorf("Axis %d of a zero-radius sphere should still be padded", axis)
		}
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, &DummyMaterial{})

	if c := sphere.CenterAt(0.5); !c.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected center (0,1,0) at t=0.5, got %v", c)
	}

	box := sphere.BoundingBox()
	if !box.Min().Equals(core.NewVec3(-0.5, -0.5, -0.5)) || !box.Max().Equals(core.NewVec3(0.5, 2.5, 0.5)) {
		t.Errorf("Expected box to cover both keyframes, got %v..%v", box.Min(), box.Max())
	}

	// At time 0 the sphere is at the origin, at time 1 it has left
	origin := core.NewVec3(0, 0, 5)
	dir := core.NewVec3(0, 0, -1)
	if _, hit := sphere.Hit(core.NewRayAtTime(origin, dir, 0), testRayT, testSampler); !hit {
		t.Error("Expected hit at time 0")
	}
	if _, hit := sphere.Hit(core.NewRayAtTime(origin, dir, 1), testRayT, testSampler); hit {
		t.Error("Expected miss at time 1")
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name string
		p    core.Vec3
		uv   core.Vec2
	}{
		{"+X", core.NewVec3(1, 0, 0), core.NewVec2(0.5, 0.5)},
		{"+Y", core.NewVec3(0, 1, 0), core.NewVec2(0.5, 1.0)},
		{"-Y", core.NewVec3(0, -1, 0), core.NewVec2(0.5, 0.0)},
		{"+Z", core.NewVec3(0, 0, 1), core.NewVec2(0.25, 0.5)},
		{"-Z", core.NewVec3(0, 0, -1), core.NewVec2(0.75, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphereUV(tt.p)
			if math.Abs(uv.X-tt.uv.X) > 1e-9 || math.Abs(uv.Y-tt.uv.Y) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.uv, uv)
			}
		})
	}
}
