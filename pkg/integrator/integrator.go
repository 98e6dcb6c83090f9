package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Scene is the read-only view of a scene needed to trace rays.
// Defined here to avoid importing the scene package.
type Scene interface {
	World() geometry.Shape
	Background() core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray with a single sample
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
