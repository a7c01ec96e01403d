package wide

import "math"

// F32x8 represents 8 float32 lanes.
type F32x8 [Lanes]float32

// SplatF32 creates F32x8 with all lanes set to n.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs lane-wise addition.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs lane-wise subtraction.
func (v F32x8) Sub(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs lane-wise multiplication.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div divides lane-wise through the approximate reciprocal of other.
// The result carries the relative error of Rcp.
func (v F32x8) Div(other F32x8) F32x8 {
	return v.Mul(other.Rcp())
}

// FMA returns v*a + b lane-wise.
func (v F32x8) FMA(a, b F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i]*a[i] + b[i]
	}
	return result
}

// Neg negates every lane.
func (v F32x8) Neg() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = -v[i]
	}
	return result
}

// Abs clears the sign bit of every lane.
func (v F32x8) Abs() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = math.Float32frombits(math.Float32bits(v[i]) &^ signBit)
	}
	return result
}

// Sqrt computes the square root of each lane.
// Negative lanes produce NaN according to IEEE 754.
func (v F32x8) Sqrt() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(math.Sqrt(float64(v[i])))
	}
	return result
}

// Min performs lane-wise minimum.
func (v F32x8) Min(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if v[i] < other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// Max performs lane-wise maximum.
func (v F32x8) Max(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		if v[i] > other[i] {
			result[i] = v[i]
		} else {
			result[i] = other[i]
		}
	}
	return result
}

// ReduceSum adds all lanes together. It is the only horizontal operation on F32x8.
// Lanes are summed pairwise in the same order a hadd tree would use.
func (v F32x8) ReduceSum() float32 {
	a := (v[0] + v[1]) + (v[2] + v[3])
	b := (v[4] + v[5]) + (v[6] + v[7])
	return a + b
}

// Lt returns a mask of lanes where v < other.
func (v F32x8) Lt(other F32x8) Mask {
	var m Mask
	for i := range v {
		m[i] = laneMask(v[i] < other[i])
	}
	return m
}

// Le returns a mask of lanes where v <= other.
func (v F32x8) Le(other F32x8) Mask {
	var m Mask
	for i := range v {
		m[i] = laneMask(v[i] <= other[i])
	}
	return m
}

// Gt returns a mask of lanes where v > other.
func (v F32x8) Gt(other F32x8) Mask {
	var m Mask
	for i := range v {
		m[i] = laneMask(v[i] > other[i])
	}
	return m
}

// Ge returns a mask of lanes where v >= other.
func (v F32x8) Ge(other F32x8) Mask {
	var m Mask
	for i := range v {
		m[i] = laneMask(v[i] >= other[i])
	}
	return m
}

// Eq returns a mask of lanes where v == other. NaN lanes never compare equal.
func (v F32x8) Eq(other F32x8) Mask {
	var m Mask
	for i := range v {
		m[i] = laneMask(v[i] == other[i])
	}
	return m
}

// Ne returns a mask of lanes where v != other. NaN lanes are always unequal.
func (v F32x8) Ne(other F32x8) Mask {
	var m Mask
	for i := range v {
		m[i] = laneMask(v[i] != other[i])
	}
	return m
}

// Select keeps the lanes set in m and zeroes the rest by AND-ing with the
// mask bit pattern.
func (v F32x8) Select(m Mask) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = math.Float32frombits(math.Float32bits(v[i]) & m[i])
	}
	return result
}

// Blend returns b in lanes where m is set and a elsewhere.
func Blend(a, b F32x8, m Mask) F32x8 {
	var result F32x8
	for i := range a {
		result[i] = math.Float32frombits(math.Float32bits(a[i])&^m[i] | math.Float32bits(b[i])&m[i])
	}
	return result
}
