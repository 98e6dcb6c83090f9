package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShadowAcneEpsilon is the lower bound of the hit interval for every bounce
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing without light sampling
type PathTracingIntegrator struct {
	MaxDepth int // Maximum number of bounces; paths longer than this gather nothing
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.radiance(ray, pt.MaxDepth, scene, sampler)
}

func (pt *PathTracingIntegrator) radiance(ray core.Ray, depth int, scene Scene, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.World().Hit(ray, core.NewInterval(ShadowAcneEpsilon, math.Inf(1)), sampler)
	if !isHit {
		return scene.Background()
	}

	emitted := material.Emission(hit.Material, hit.UV, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.radiance(scatter.Scattered, depth-1, scene, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
