package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Shapes are immutable once built and safe to share between render workers.
type Shape interface {
	// Hit returns the closest intersection with t in rayT, if any.
	// sampler is only consumed by stochastic shapes like ConstantMedium.
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool)
	// BoundingBox returns the precomputed box enclosing the shape
	BoundingBox() core.AABB
}
