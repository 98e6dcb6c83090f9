package core

import "math"

// minAxisSize is the thinnest extent any AABB axis is allowed to have
const minAxisSize = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

var (
	// EmptyAABB bounds nothing and is the identity for Union
	EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
	// UniverseAABB bounds all of space
	UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}
)

// NewAABB creates an AABB from three intervals, padding any axis thinner than minAxisSize
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: x, Y: y, Z: z}
	aabb.padToMinimums()
	return aabb
}

// NewAABBFromPoints creates an AABB with a and b as opposite corners, in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		NewInterval(math.Min(a.X, b.X), math.Max(a.X, b.X)),
		NewInterval(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)),
		NewInterval(math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)),
	)
}

// NewAABBFromBoxes creates the smallest AABB enclosing both boxes
func NewAABBFromBoxes(a, b AABB) AABB {
	return a.Union(b)
}

func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < minAxisSize {
		aabb.X = aabb.X.Expand(minAxisSize)
	}
	if aabb.Y.Size() < minAxisSize {
		aabb.Y = aabb.Y.Expand(minAxisSize)
	}
	if aabb.Z.Size() < minAxisSize {
		aabb.Z = aabb.Z.Expand(minAxisSize)
	}
}

// AxisInterval returns the interval for axis 0 (X), 1 (Y) or 2 (Z)
func (aabb AABB) AxisInterval(n int) Interval {
	switch n {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method.
// Zero direction components produce signed infinities which the comparisons absorb.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		ax := aabb.AxisInterval(axis)
		adinv := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (ax.Min - origin) * adinv
		t1 := (ax.Max - origin) * adinv

		if t0 < t1 {
			if t0 > rayT.Min {
				rayT.Min = t0
			}
			if t1 < rayT.Max {
				rayT.Max = t1
			}
		} else {
			if t1 > rayT.Min {
				rayT.Min = t1
			}
			if t0 < rayT.Max {
				rayT.Max = t0
			}
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		X: aabb.X.Union(other.X),
		Y: aabb.Y.Union(other.Y),
		Z: aabb.Z.Union(other.Z),
	}
}

// Translate returns the AABB shifted by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Add(offset.X),
		Y: aabb.Y.Add(offset.Y),
		Z: aabb.Z.Add(offset.Z),
	}
}

// Corner returns one of the 8 corners; bit 0 of i selects max X, bit 1 max Y, bit 2 max Z
func (aabb AABB) Corner(i int) Vec3 {
	pick := func(iv Interval, useMax bool) float64 {
		if useMax {
			return iv.Max
		}
		return iv.Min
	}
	return Vec3{
		X: pick(aabb.X, i&1 != 0),
		Y: pick(aabb.Y, i&2 != 0),
		Z: pick(aabb.Z, i&4 != 0),
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return Vec3{aabb.X.Min, aabb.Y.Min, aabb.Z.Min}
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return Vec3{aabb.X.Max, aabb.Y.Max, aabb.Z.Max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return Vec3{aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()}
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// An earlier axis only wins when it is strictly longer.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsEmpty returns true if any axis is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}
