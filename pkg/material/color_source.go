package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two color sources in a 3D lattice of cubes
type CheckerTexture struct {
	invScale float64
	Even     ColorSource
	Odd      ColorSource
}

// NewCheckerTexture creates a checker whose cells are scale units wide
func NewCheckerTexture(scale float64, even, odd ColorSource) *CheckerTexture {
	return &CheckerTexture{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker from two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks Even or Odd by the parity of the cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// noiseTurbulenceDepth is the number of octaves summed by NoiseTexture
const noiseTurbulenceDepth = 7

// NewNoiseTexture creates a noise texture with its own Perlin tables drawn from sampler
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(sampler), Scale: scale}
}

// Evaluate returns a grey level in [0,1] that bands along z
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	grey := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.noise.Turb(point, noiseTurbulenceDepth)))
	return core.NewVec3(grey, grey, grey)
}
