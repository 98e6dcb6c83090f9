package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boundaryEpsilon separates the entry and exit searches on the boundary
const boundaryEpsilon = 0.0001

// ConstantMedium is a volume of uniform density filling a closed, convex boundary shape.
// Rays scatter inside it after an exponentially distributed free-flight distance.
type ConstantMedium struct {
	Boundary      Shape
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium fills boundary with a medium of the given density and albedo
func NewConstantMedium(boundary Shape, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium fills boundary with a medium whose albedo comes from a color source.
// A density that is not positive gives an empty medium that never scatters.
func NewTexturedConstantMedium(boundary Shape, density float64, albedo material.ColorSource) *ConstantMedium {
	m := &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
	}
	if density > 0 {
		m.negInvDensity = -1.0 / density
	}
	return m
}

// Hit samples a scattering event inside the medium
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	if m.negInvDensity == 0 {
		return nil, false
	}
	entry, ok := m.Boundary.Hit(ray, core.UniverseInterval, sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, core.NewInterval(entry.T+boundaryEpsilon, math.Inf(1)), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return nil, false
	}
	t1 = math.Max(t1, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's bounding box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
