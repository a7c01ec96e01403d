package wide

import "math/bits"

const (
	signBit  = 0x80000000
	laneOnes = 0xFFFFFFFF
)

// Mask is a per-lane boolean: every lane is either all bits set or all bits clear.
// Only comparisons and the MaskAll/MaskNone constructors produce masks.
type Mask [Lanes]uint32

// MaskAll returns a mask with every lane set.
func MaskAll() Mask {
	var m Mask
	for i := range m {
		m[i] = laneOnes
	}
	return m
}

// MaskNone returns a mask with no lane set.
func MaskNone() Mask {
	return Mask{}
}

func laneMask(b bool) uint32 {
	if b {
		return laneOnes
	}
	return 0
}

// And returns the lanes set in both masks.
func (m Mask) And(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] & other[i]
	}
	return result
}

// Or returns the lanes set in either mask.
func (m Mask) Or(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] | other[i]
	}
	return result
}

// Xor returns the lanes set in exactly one mask.
func (m Mask) Xor(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] ^ other[i]
	}
	return result
}

// AndNot returns the lanes set in m but not in other.
func (m Mask) AndNot(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] &^ other[i]
	}
	return result
}

// Not inverts every lane.
func (m Mask) Not() Mask {
	return m.Xor(MaskAll())
}

// Lane reports whether lane i is set.
func (m Mask) Lane(i int) bool {
	return m[i] != 0
}

// Any reports whether at least one lane is set.
func (m Mask) Any() bool {
	var acc uint32
	for i := range m {
		acc |= m[i]
	}
	return acc != 0
}

// All reports whether every lane is set.
func (m Mask) All() bool {
	acc := uint32(laneOnes)
	for i := range m {
		acc &= m[i]
	}
	return acc == laneOnes
}

// Count returns the number of set lanes.
func (m Mask) Count() int {
	n := 0
	for i := range m {
		n += bits.OnesCount32(m[i]) / 32
	}
	return n
}
