package wide

import "math"

// Tolerance bounds the relative error of Rcp and Rsqrt.
const Tolerance = 1e-3

const (
	rcpMagic   = 0x7EF311C3
	rsqrtMagic = 0x5F375A86

	// Lanes at or above 2^125 are scaled down by 16 before seeding; the
	// seed wraps around for exponents close to the top of the range.
	rcpLargeBits = 0x7E000000
	rcpLargeStep = 16
	infBits      = 0x7F800000
)

// Rcp returns an approximate reciprocal of every lane.
//
// The estimate starts from an exponent-flipping bit trick and is refined with
// two Newton-Raphson steps. Zero lanes overflow to +Inf and infinite lanes
// return a zero of the same sign, matching a hardware reciprocal estimate.
func (v F32x8) Rcp() F32x8 {
	var result F32x8
	for i := range v {
		b := math.Float32bits(v[i])
		sign := b & signBit
		abs := b &^ signBit
		if abs == infBits {
			result[i] = math.Float32frombits(sign)
			continue
		}

		var scale float32 = 1
		if abs >= rcpLargeBits {
			abs = math.Float32bits(math.Float32frombits(abs) / rcpLargeStep)
			scale = 1.0 / rcpLargeStep
		}
		x := math.Float32frombits(abs)
		y := math.Float32frombits(rcpMagic - abs)
		y = y * (2 - x*y)
		y = y * (2 - x*y)
		result[i] = math.Float32frombits(math.Float32bits(y*scale) | sign)
	}
	return result
}

// Rsqrt returns an approximate 1/sqrt of every lane.
// Negative lanes produce NaN; zero lanes produce a very large finite value.
func (v F32x8) Rsqrt() F32x8 {
	var result F32x8
	for i := range v {
		x := v[i]
		if x < 0 {
			result[i] = float32(math.NaN())
			continue
		}
		half := 0.5 * x
		y := math.Float32frombits(rsqrtMagic - math.Float32bits(x)>>1)
		y = y * (1.5 - half*y*y)
		y = y * (1.5 - half*y*y)
		result[i] = y
	}
	return result
}
