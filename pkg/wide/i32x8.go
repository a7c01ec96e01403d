package wide

// I32x8 represents 8 int32 lanes. It carries per-lane tags such as material kinds.
type I32x8 [Lanes]int32

// SplatI32 creates I32x8 with all lanes set to n.
func SplatI32(n int32) I32x8 {
	var result I32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Eq returns a mask of lanes where v == other.
func (v I32x8) Eq(other I32x8) Mask {
	var m Mask
	for i := range v {
		m[i] = laneMask(v[i] == other[i])
	}
	return m
}

// Select keeps the lanes set in m and zeroes the rest.
func (v I32x8) Select(m Mask) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = int32(uint32(v[i]) & m[i])
	}
	return result
}

// BlendI32 returns b in lanes where m is set and a elsewhere.
func BlendI32(a, b I32x8, m Mask) I32x8 {
	var result I32x8
	for i := range a {
		result[i] = int32(uint32(a[i])&^m[i] | uint32(b[i])&m[i])
	}
	return result
}
