package core

import "github.com/df07/go-simd-raytracer/pkg/wide"

const (
	// RandMax is the largest value the generators return.
	RandMax = 1<<31 - 1

	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	rcpRandMax    = float32(1.0 / RandMax)
)

// Sampler provides lane-parallel random sampling for scattering.
// Can be swapped out for deterministic testing.
type Sampler interface {
	// Get1D returns one value in [0, 1] per lane
	Get1D() wide.F32x8
	// UnitVector returns one normalized random direction per lane
	UnitVector() Vec3x8
}

// ScalarSampler is the single-lane counterpart of Sampler.
type ScalarSampler interface {
	Get1D() float32
	UnitVector() Vec3
}

func lcgStep(seed uint32) uint32 {
	return (seed*lcgMultiplier + lcgIncrement) & RandMax
}

// LCG is a scalar linear congruential generator. It is owned by one goroutine.
type LCG struct {
	seed uint32
}

// NewLCG creates a generator with the given seed
func NewLCG(seed uint32) *LCG {
	return &LCG{seed: seed & RandMax}
}

// Next advances the generator and returns the new seed in [0, RandMax]
func (g *LCG) Next() uint32 {
	g.seed = lcgStep(g.seed)
	return g.seed
}

// Float32 returns a value in [0, 1]
func (g *LCG) Float32() float32 {
	return float32(g.Next()) * rcpRandMax
}

// Float32In returns a value in [lo, hi]
func (g *LCG) Float32In(lo, hi float32) float32 {
	return lo + g.Float32()*(hi-lo)
}

// Get1D returns a value in [0, 1]
func (g *LCG) Get1D() float32 {
	return g.Float32In(0, 1)
}

// UnitVector samples the cube [-1,1]^3 and normalizes the result, drawing the
// axes in the same order as LCG8.UnitVector.
func (g *LCG) UnitVector() Vec3 {
	x := g.Float32In(-1, 1)
	y := g.Float32In(-1, 1)
	z := g.Float32In(-1, 1)
	return NewVec3(x, y, z).Normalize()
}

// LCG8 runs 8 linear congruential generators in lockstep, one per lane.
// Lane i behaves exactly like an LCG seeded with the same lane seed.
type LCG8 struct {
	seeds [wide.Lanes]uint32
}

// NewLCG8 derives 8 lane seeds from seed by iterating the generator recurrence:
// lane 0 gets seed itself and lane i gets the successor of lane i-1.
func NewLCG8(seed uint32) *LCG8 {
	g := &LCG8{}
	g.seeds[0] = seed & RandMax
	for i := 1; i < wide.Lanes; i++ {
		g.seeds[i] = lcgStep(g.seeds[i-1])
	}
	return g
}

// Next advances every lane and returns the new seeds
func (g *LCG8) Next() wide.I32x8 {
	var out wide.I32x8
	for i := range g.seeds {
		g.seeds[i] = lcgStep(g.seeds[i])
		out[i] = int32(g.seeds[i])
	}
	return out
}

// F32x8In returns one value in [lo, hi] per lane
func (g *LCG8) F32x8In(lo, hi float32) wide.F32x8 {
	next := g.Next()
	var scale wide.F32x8
	for i := range next {
		scale[i] = float32(next[i]) * rcpRandMax
	}
	return scale.FMA(wide.SplatF32(hi-lo), wide.SplatF32(lo))
}

// Get1D returns one value in [0, 1] per lane
func (g *LCG8) Get1D() wide.F32x8 {
	return g.F32x8In(0, 1)
}

// UnitVector samples the cube [-1,1]^3 per lane and normalizes the result.
// The distribution is not uniform on the sphere.
func (g *LCG8) UnitVector() Vec3x8 {
	v := Vec3x8{
		X: g.F32x8In(-1, 1),
		Y: g.F32x8In(-1, 1),
		Z: g.F32x8In(-1, 1),
	}
	return v.Normalize()
}
