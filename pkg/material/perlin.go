package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin generates smooth gradient noise from random lattice vectors
type Perlin struct {
	randVec [perlinPointCount]core.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.randVec {
		p.randVec[i] = core.RandomVec3(sampler, -1, 1).Normalize()
	}
	generatePerm(&p.permX, sampler)
	generatePerm(&p.permY, sampler)
	generatePerm(&p.permZ, sampler)
	return p
}

func generatePerm(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := perlinPointCount - 1; i > 0; i-- {
		target := core.RandomInt(sampler, 0, i)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns gradient noise at p, roughly in [-1, 1]
func (pn *Perlin) Noise(p core.Vec3) float64 {
	u := p.X - math.Floor(p.X)
	v := p.Y - math.Floor(p.Y)
	w := p.Z - math.Floor(p.Z)

	i := int(math.Floor(p.X))
	j := int(math.Floor(p.Y))
	k := int(math.Floor(p.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = pn.randVec[pn.permX[(i+di)&255]^pn.permY[(j+dj)&255]^pn.permZ[(k+dk)&255]]
			}
		}
	}

	return perlinInterp(&c, u, v, w)
}

// Turb sums depth octaves of noise, halving the weight and doubling the frequency each time
func (pn *Perlin) Turb(p core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for d := 0; d < depth; d++ {
		accum += weight * pn.Noise(p)
		weight *= 0.5
		p = p.Multiply(2)
	}
	return math.Abs(accum)
}

// perlinInterp blends the corner gradients with Hermite smoothing
func perlinInterp(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		fi := float64(i)
		for j := 0; j < 2; j++ {
			fj := float64(j)
			for k := 0; k < 2; k++ {
				fk := float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}
