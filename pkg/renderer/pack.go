package renderer

import (
	"math"

	"github.com/df07/go-simd-raytracer/pkg/core"
)

// BlockPixels is the number of pixels written to the frame buffer at once.
const BlockPixels = 32

// packBlock scales a block of accumulated colors, narrows every channel to a
// byte and copies the whole block into dst with a single copy.
func packBlock(dst []byte, colors []core.Vec3, scale float32) {
	var block [BlockPixels * 3]byte
	for i, c := range colors {
		block[i*3] = packChannel(c.X * scale)
		block[i*3+1] = packChannel(c.Y * scale)
		block[i*3+2] = packChannel(c.Z * scale)
	}
	copy(dst, block[:len(colors)*3])
}

// packChannel rounds to the nearest even integer and narrows to 16 then
// 8 bits with saturation.
func packChannel(v float32) uint8 {
	return saturateUint8(saturateInt16(roundToInt32(v)))
}

// roundToInt32 returns math.MinInt32 for NaN and out of range values, the
// same indefinite result a hardware conversion produces.
func roundToInt32(v float32) int32 {
	r := math.RoundToEven(float64(v))
	if math.IsNaN(r) || r < math.MinInt32 || r > math.MaxInt32 {
		return math.MinInt32
	}
	return int32(r)
}

func saturateInt16(v int32) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}

func saturateUint8(v int16) uint8 {
	switch {
	case v > math.MaxUint8:
		return math.MaxUint8
	case v < 0:
		return 0
	default:
		return uint8(v)
	}
}
