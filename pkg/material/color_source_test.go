package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCheckerTexture_Parity(t *testing.T) {
	even := core.NewVec3(0.2, 0.3, 0.1)
	odd := core.NewVec3(0.9, 0.9, 0.9)
	checker := NewCheckerColors(0.32, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"Origin cell", core.NewVec3(0.1, 0.1, 0.1), even},
		{"One step in X", core.NewVec3(0.4, 0.1, 0.1), odd},
		{"Two steps", core.NewVec3(0.4, 0.4, 0.1), even},
		{"Negative X", core.NewVec3(-0.1, 0.1, 0.1), odd},
		{"Negative in all axes", core.NewVec3(-0.1, -0.1, -0.1), odd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNoiseTexture_RangeAndDeterminism(t *testing.T) {
	a := NewNoiseTexture(4, core.NewRandomSampler(rand.New(rand.NewSource(42))))
	b := NewNoiseTexture(4, core.NewRandomSampler(rand.New(rand.NewSource(42))))
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		p := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		ca := a.Evaluate(core.Vec2{}, p)
		if ca.X < 0 || ca.X > 1 || ca.X != ca.Y || ca.Y != ca.Z {
			t.Fatalf("Expected grey level in [0,1], got %v", ca)
		}
		if cb := b.Evaluate(core.Vec2{}, p); cb != ca {
			t.Fatalf("Same seed produced different noise at %v: %v vs %v", p, ca, cb)
		}
	}
}

func TestPerlin_NoiseIsContinuous(t *testing.T) {
	perlin := NewPerlin(core.NewRandomSampler(rand.New(rand.NewSource(42))))

	// Noise at integer lattice points is zero
	for _, p := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(3, -2, 7)} {
		if n := perlin.Noise(p); math.Abs(n) > 1e-12 {
			t.Errorf("Expected zero noise at lattice point %v, got %v", p, n)
		}
	}

	p := core.NewVec3(1.3, 2.7, -0.4)
	step := core.NewVec3(1e-6, 0, 0)
	if d := math.Abs(perlin.Noise(p) - perlin.Noise(p.Add(step))); d > 1e-4 {
		t.Errorf("Noise jumped by %v over a tiny step", d)
	}
}

func TestPerlin_TurbIsNonNegative(t *testing.T) {
	perlin := NewPerlin(core.NewRandomSampler(rand.New(rand.NewSource(9))))
	random := rand.New(rand.NewSource(10))

	for i := 0; i < 100; i++ {
		p := core.NewVec3(random.Float64()*5, random.Float64()*5, random.Float64()*5)
		if v := perlin.Turb(p, 7); v < 0 {
			t.Fatalf("Turb(%v) = %v, expected >= 0", p, v)
		}
	}
}
