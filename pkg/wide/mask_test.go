package wide

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMask_Algebra(t *testing.T) {
	a := maskOf([Lanes]bool{true, true, false, false, true, true, false, false})
	b := maskOf([Lanes]bool{true, false, true, false, true, false, true, false})

	require.Equal(t, maskOf([Lanes]bool{true, false, false, false, true, false, false, false}), a.And(b))
	require.Equal(t, maskOf([Lanes]bool{true, true, true, false, true, true, true, false}), a.Or(b))
	require.Equal(t, maskOf([Lanes]bool{false, true, true, false, false, true, true, false}), a.Xor(b))
	require.Equal(t, maskOf([Lanes]bool{false, true, false, false, false, true, false, false}), a.AndNot(b))
	require.Equal(t, maskOf([Lanes]bool{false, false, true, true, false, false, true, true}), a.Not())
}

func TestMask_Lanes(t *testing.T) {
	for i := range MaskAll() {
		require.Equal(t, uint32(0xFFFFFFFF), MaskAll()[i])
		require.Equal(t, uint32(0), MaskNone()[i])
	}

	require.True(t, MaskAll().All())
	require.True(t, MaskAll().Any())
	require.False(t, MaskNone().Any())
	require.False(t, MaskNone().All())
	require.Equal(t, 8, MaskAll().Count())
	require.Equal(t, 0, MaskNone().Count())

	one := maskOf([Lanes]bool{false, false, false, false, false, true})
	require.True(t, one.Any())
	require.False(t, one.All())
	require.Equal(t, 1, one.Count())
	require.True(t, one.Lane(5))
}

func TestMask_NotIsInvolution(t *testing.T) {
	m := SplatF32(1).Lt(F32x8{0, 2, 0, 2, 0, 2, 0, 2})
	require.Equal(t, m, m.Not().Not())
	require.False(t, m.And(m.Not()).Any())
	require.True(t, m.Or(m.Not()).All())
}

func TestI32x8(t *testing.T) {
	kinds := I32x8{0, 1, 2, 0, 1, 2, 0, 1}

	require.Equal(t, 3, kinds.Eq(SplatI32(0)).Count())
	require.Equal(t, 3, kinds.Eq(SplatI32(1)).Count())
	require.Equal(t, 2, kinds.Eq(SplatI32(2)).Count())

	m := kinds.Eq(SplatI32(2))
	require.Equal(t, I32x8{0, 0, 2, 0, 0, 2, 0, 0}, kinds.Select(m))
	require.Equal(t, I32x8{0, 1, 7, 0, 1, 7, 0, 1}, BlendI32(kinds, SplatI32(7), m))
}

func maskOf(b [Lanes]bool) Mask {
	var m Mask
	for i := range b {
		m[i] = laneMask(b[i])
	}
	return m
}
