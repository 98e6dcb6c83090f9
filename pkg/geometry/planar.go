package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// PlanarKind selects which region of the plane a Planar shape covers
type PlanarKind int

const (
	// PlanarQuad covers the parallelogram 0 <= alpha, beta <= 1
	PlanarQuad PlanarKind = iota
	// PlanarTriangle covers alpha > 0, beta > 0, alpha + beta < 1
	PlanarTriangle
	// PlanarDisk covers sqrt(alpha² + beta²) <= radius
	PlanarDisk
)

// parallelEpsilon rejects rays this close to parallel with the plane
const parallelEpsilon = 1e-8

// Planar is a flat shape spanned by a corner Q and two edge vectors U and V.
// Hit points are decomposed into plane coordinates (alpha, beta) along U and V,
// which also serve as texture coordinates.
type Planar struct {
	Q        core.Vec3
	U        core.Vec3
	V        core.Vec3
	Kind     PlanarKind
	Radius   float64 // Only used by PlanarDisk, in units of U and V
	Material material.Material

	normal core.Vec3 // unit normal, U × V normalized
	d      float64   // plane constant: normal · Q
	w      core.Vec3 // n / (n · n), used to project onto U and V
	bbox   core.AABB
}

// NewQuad creates a parallelogram with corner q and edges u and v
func NewQuad(q, u, v core.Vec3, mat material.Material) *Planar {
	return newPlanar(q, u, v, PlanarQuad, 0, mat)
}

// NewTriangle creates the triangle with vertices q, q+u and q+v
func NewTriangle(q, u, v core.Vec3, mat material.Material) *Planar {
	return newPlanar(q, u, v, PlanarTriangle, 0, mat)
}

// NewDisk creates a disk centered at center in the plane of u and v.
// radius is measured in plane coordinates, so unit-length u and v give a world-space radius.
func NewDisk(center, u, v core.Vec3, radius float64, mat material.Material) *Planar {
	return newPlanar(center, u, v, PlanarDisk, math.Max(0, radius), mat)
}

func newPlanar(q, u, v core.Vec3, kind PlanarKind, radius float64, mat material.Material) *Planar {
	n := u.Cross(v)
	normal := n.Normalize()

	p := &Planar{
		Q:        q,
		U:        u,
		V:        v,
		Kind:     kind,
		Radius:   radius,
		Material: mat,
		normal:   normal,
		d:        normal.Dot(q),
	}
	if nn := n.LengthSquared(); nn > 0 {
		p.w = n.Divide(nn)
	}
	p.bbox = p.computeBoundingBox()
	return p
}

func (p *Planar) computeBoundingBox() core.AABB {
	if p.Kind == PlanarDisk {
		ru := p.U.Multiply(p.Radius)
		rv := p.V.Multiply(p.Radius)
		box1 := core.NewAABBFromPoints(p.Q.Subtract(ru).Subtract(rv), p.Q.Add(ru).Add(rv))
		box2 := core.NewAABBFromPoints(p.Q.Subtract(ru).Add(rv), p.Q.Add(ru).Subtract(rv))
		return box1.Union(box2)
	}
	if p.Kind == PlanarTriangle {
		edge1 := core.NewAABBFromPoints(p.Q, p.Q.Add(p.U))
		edge2 := core.NewAABBFromPoints(p.Q, p.Q.Add(p.V))
		return edge1.Union(edge2)
	}
	diag1 := core.NewAABBFromPoints(p.Q, p.Q.Add(p.U).Add(p.V))
	diag2 := core.NewAABBFromPoints(p.Q.Add(p.U), p.Q.Add(p.V))
	return diag1.Union(diag2)
}

// Hit tests if a ray intersects the planar shape
func (p *Planar) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*material.HitRecord, bool) {
	denom := p.normal.Dot(ray.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return nil, false
	}

	t := (p.d - p.normal.Dot(ray.Origin)) / denom
	if !rayT.Contains(t) {
		return nil, false
	}

	point := ray.At(t)
	planar := point.Subtract(p.Q)
	alpha := p.w.Dot(planar.Cross(p.V))
	beta := p.w.Dot(p.U.Cross(planar))

	if !p.isInterior(alpha, beta) {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    point,
		UV:       core.NewVec2(alpha, beta),
		Material: p.Material,
	}
	hitRecord.SetFaceNormal(ray, p.normal)

	return hitRecord, true
}

func (p *Planar) isInterior(alpha, beta float64) bool {
	switch p.Kind {
	case PlanarTriangle:
		return alpha > 0 && beta > 0 && alpha+beta < 1
	case PlanarDisk:
		return math.Sqrt(alpha*alpha+beta*beta) <= p.Radius
	default:
		unit := core.NewInterval(0, 1)
		return unit.Contains(alpha) && unit.Contains(beta)
	}
}

// Normal returns the unit plane normal, U × V normalized
func (p *Planar) Normal() core.Vec3 {
	return p.normal
}

// BoundingBox returns the axis-aligned bounding box for this shape
func (p *Planar) BoundingBox() core.AABB {
	return p.bbox
}
