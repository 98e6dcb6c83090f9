package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     core.Clamp(ratio, 0.0, 1.0),
	}
}

// Scatter delegates to one of the two materials, chosen per call
func (m *Mix) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	if sampler.Get1D() < m.Ratio {
		return m.Material2.Scatter(rayIn, hit, sampler)
	}
	return m.Material1.Scatter(rayIn, hit, sampler)
}

// Emitted blends the emission of both materials by Ratio
func (m *Mix) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	e1 := Emission(m.Material1, uv, point)
	e2 := Emission(m.Material2, uv, point)
	return e1.Multiply(1.0 - m.Ratio).Add(e2.Multiply(m.Ratio))
}
