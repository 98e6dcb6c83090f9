package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape, optionally moving linearly over the shutter interval
type Sphere struct {
	Center   core.Vec3 // Center at time 0
	Motion   core.Vec3 // Displacement between time 0 and time 1
	Radius   float64
	Material material.Material
	moving   bool
	bbox     core.AABB
}

// NewSphere creates a new static sphere. Negative radii are clamped to 0.
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere whose center moves from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Subtract(rvec), center2.Add(rvec))
	return &Sphere{
		Center:   center1,
		Motion:   center2.Subtract(center1),
		Radius:   radius,
		Material: mat,
		moving:   true,
		bbox:     core.NewAABBFromBoxes(box1, box2),
	}
}

// CenterAt returns the sphere center at the given time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	if !s.moving {
		return s.Center
	}
	return s.Center.Add(s.Motion.Multiply(time))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	center := s.Center
	if s.moving {
		center = s.CenterAt(ray.Time)
	}

	// Half-discriminant form of |O + tD - C|² = r²
	oc := center.Subtract(ray.Origin)
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Nearer root first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(center).Normalize()

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    point,
		UV:       sphereUV(outwardNormal),
		Material: s.Material,
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u wraps around the Y axis starting at -X, v runs from -Y (0) to +Y (1).
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(core.Clamp(-p.Y, -1.0, 1.0))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
