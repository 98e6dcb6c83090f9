package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is a linear collection of shapes with a running union bounding box
type List struct {
	Shapes []Shape
	bbox   core.AABB
}

// NewList creates a list holding the given shapes
func NewList(shapes ...Shape) *List {
	l := &List{bbox: core.EmptyAABB}
	for _, s := range shapes {
		l.Add(s)
	}
	return l
}

// Add appends a shape and grows the bounding box.
// Lists must not be modified once rendering starts.
func (l *List) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
	l.bbox = l.bbox.Union(shape.BoundingBox())
}

// Len returns the number of shapes in the list
func (l *List) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest hit among all shapes, narrowing rayT after each hit
func (l *List) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.Shapes {
		if hit, ok := shape.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of the contained shapes' boxes
func (l *List) BoundingBox() core.AABB {
	return l.bbox
}
