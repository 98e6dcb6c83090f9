package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves an inner shape by Offset without copying its geometry
type Translate struct {
	Object Shape
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so that it appears displaced by offset
func NewTranslate(object Shape, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit intersects the ray moved into object space, then moves the hit back
func (tr *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)

	hit, ok := tr.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the translated bounding box
func (tr *Translate) BoundingBox() core.AABB {
	return tr.bbox
}

// RotateY rotates an inner shape about the Y axis
type RotateY struct {
	Object   Shape
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Shape, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// The rotated box is the axis-aligned union of all 8 rotated corners
	inner := object.BoundingBox()
	bbox := core.EmptyAABB
	for i := 0; i < 8; i++ {
		c := r.toWorld(inner.Corner(i))
		bbox = bbox.Union(core.NewAABBFromPoints(c, c))
	}
	r.bbox = bbox

	return r
}

// toWorld rotates an object-space vector into world space
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toObject applies the inverse rotation
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit intersects the ray rotated into object space, then rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}

	// Rotation preserves dot products, so FrontFace stays valid
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the conservative world-space bounding box
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
