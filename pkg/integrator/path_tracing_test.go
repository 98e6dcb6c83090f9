package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// testScene implements Scene for testing
type testScene struct {
	world      geometry.Shape
	background core.Vec3
}

func (s testScene) World() geometry.Shape { return s.world }
func (s testScene) Background() core.Vec3 { return s.background }

// alwaysHit reports a hit at t=1 for every ray and records the interval it was queried with
type alwaysHit struct {
	material material.Material
	lastRayT *core.Interval
}

func (a alwaysHit) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if a.lastRayT != nil {
		*a.lastRayT = rayT
	}
	hit := &material.HitRecord{T: 1, Point: ray.At(1), Material: a.material}
	hit.SetFaceNormal(ray, core.NewVec3(0, 0, 1))
	return hit, true
}

func (a alwaysHit) BoundingBox() core.AABB { return core.UniverseAABB }

// glowingMirror emits a fixed color and scatters straight back with a fixed attenuation
type glowingMirror struct {
	emission    core.Vec3
	attenuation core.Vec3
}

func (g glowingMirror) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, rayIn.Direction.Negate(), rayIn.Time),
		Attenuation: g.attenuation,
	}, true
}

func (g glowingMirror) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 { return g.emission }

// absorber never scatters and emits nothing
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func TestPathTracingDepthTermination(t *testing.T) {
	sc := testScene{
		world:      alwaysHit{material: glowingMirror{emission: core.NewVec3(1, 1, 1), attenuation: core.NewVec3(0.5, 0.5, 0.5)}},
		background: core.NewVec3(1, 1, 1),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for _, depth := range []int{-1, 0} {
		if c := NewPathTracingIntegrator(depth).RayColor(ray, sc, newTestSampler()); c != (core.Vec3{}) {
			t.Errorf("Expected black for depth %d, got %v", depth, c)
		}
	}

	// L(d) = 1 + 0.5 * L(d-1) with L(0) = 0 gives L(d) = 2 * (1 - 0.5^d)
	for depth := 1; depth <= 10; depth++ {
		c := NewPathTracingIntegrator(depth).RayColor(ray, sc, newTestSampler())
		want := 2 * (1 - math.Pow(0.5, float64(depth)))
		if math.Abs(c.X-want) > 1e-12 || c.X != c.Y || c.Y != c.Z {
			t.Errorf("depth %d: expected %v, got %v", depth, want, c)
		}
	}
}

func TestPathTracingMissReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.7, 0.8, 1.0)
	sc := testScene{world: geometry.NewList(), background: background}

	c := NewPathTracingIntegrator(50).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3)), sc, newTestSampler())
	if c != background {
		t.Errorf("Expected background %v, got %v", background, c)
	}
}

func TestPathTracingHitInterval(t *testing.T) {
	var rayT core.Interval
	sc := testScene{world: alwaysHit{material: absorber{}, lastRayT: &rayT}}

	NewPathTracingIntegrator(5).RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), sc, newTestSampler())

	if rayT.Min != ShadowAcneEpsilon || !math.IsInf(rayT.Max, 1) {
		t.Errorf("Expected hit interval [%v, +Inf), got %v", ShadowAcneEpsilon, rayT)
	}
}

func TestPathTracingAbsorptionAndEmission(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	integrator := NewPathTracingIntegrator(10)

	// An absorbing surface contributes nothing, even under a bright background
	dark := testScene{world: alwaysHit{material: absorber{}}, background: core.NewVec3(1, 1, 1)}
	if c := integrator.RayColor(ray, dark, newTestSampler()); c != (core.Vec3{}) {
		t.Errorf("Expected black from absorber, got %v", c)
	}

	// A light returns its emission alone
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, light)
	lit := testScene{world: sphere, background: core.NewVec3(0.5, 0.5, 0.5)}
	if c := integrator.RayColor(ray, lit, newTestSampler()); !c.Equals(core.NewVec3(4, 4, 4)) {
		t.Errorf("Expected emission (4,4,4), got %v", c)
	}
}

func TestPathTracingDiffuseUnderUniformSky(t *testing.T) {
	// A single diffuse sphere under a uniform white sky
	albedo := 0.5
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(albedo, albedo, albedo)))
	sc := testScene{world: sphere, background: core.NewVec3(1, 1, 1)}
	integrator := NewPathTracingIntegrator(50)
	sampler := newTestSampler()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	const samples = 2000
	var sum core.Vec3
	for i := 0; i < samples; i++ {
		c := integrator.RayColor(ray, sc, sampler)
		if c.X < 0 || c.X > albedo+1e-12 {
			t.Fatalf("Sample %v outside [0, albedo]", c)
		}
		sum = sum.Add(c)
	}

	// A convex sphere is never hit again by its own outward scatter, so each path
	// bounces once and returns albedo * sky
	mean := sum.Multiply(1.0 / samples)
	if math.Abs(mean.X-albedo) > 1e-9 {
		t.Errorf("Expected mean %v for a convex diffuse sphere, got %v", albedo, mean.X)
	}
}
