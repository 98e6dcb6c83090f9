package core

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Interval is a closed range of real numbers [Min, Max].
// An interval with Min > Max is empty.
type Interval struct {
	Min, Max float64
}

var (
	// EmptyInterval contains nothing and absorbs into any union
	EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	// UniverseInterval contains every real number
	UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Size returns Max - Min
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies in the closed interval
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies strictly inside the interval
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval bounds
func (i Interval) Clamp(x float64) float64 {
	return Clamp(x, i.Min, i.Max)
}

// Expand pads the interval by delta/2 on both sides
func (i Interval) Expand(delta float64) Interval {
	padding := delta / 2
	return Interval{Min: i.Min - padding, Max: i.Max + padding}
}

// Union returns the smallest interval enclosing both intervals.
// EmptyInterval is the identity element.
func (i Interval) Union(other Interval) Interval {
	return Interval{
		Min: math.Min(i.Min, other.Min),
		Max: math.Max(i.Max, other.Max),
	}
}

// Add shifts the interval by a displacement
func (i Interval) Add(displacement float64) Interval {
	return Interval{Min: i.Min + displacement, Max: i.Max + displacement}
}

// IsEmpty reports whether the interval contains no points
func (i Interval) IsEmpty() bool {
	return !(i.Min <= i.Max)
}

// Clamp limits x to [lo, hi]
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
