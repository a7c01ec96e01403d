package core

import (
	"testing"

	"github.com/df07/go-simd-raytracer/pkg/wide"
	"github.com/stretchr/testify/require"
)

// testLanes are 8 unrelated vectors used to compare cluster math against the scalar path.
var testLanes = [wide.Lanes]Vec3{
	NewVec3(1, 0, 0),
	NewVec3(0, -1, 0),
	NewVec3(0.3, 0.4, -0.5),
	NewVec3(-2, 7, 1),
	NewVec3(10, -10, 0.1),
	NewVec3(0.001, 0.002, 0.003),
	NewVec3(-1, -1, -1),
	NewVec3(5, 0.5, -3),
}

var testNormals = [wide.Lanes]Vec3{
	NewVec3(0, 1, 0),
	NewVec3(0, 1, 0),
	NewVec3(1, 1, 0).Normalize(),
	NewVec3(0, 0, 1),
	NewVec3(-1, 2, 3).Normalize(),
	NewVec3(1, 0, 0),
	NewVec3(1, 1, 1).Normalize(),
	NewVec3(0, -1, 0),
}

func pack(vs [wide.Lanes]Vec3) Vec3x8 {
	var c Vec3x8
	for i, v := range vs {
		c.SetLane(i, v)
	}
	return c
}

func TestBroadcast(t *testing.T) {
	v := NewVec3(1, 2, 3)
	c := Broadcast(v)
	for i := 0; i < wide.Lanes; i++ {
		require.Equal(t, v, c.Lane(i))
	}
}

func TestVec3x8_LaneIndependence(t *testing.T) {
	a := pack(testLanes)
	n := pack(testNormals)

	sum := a.Add(n)
	diff := a.Subtract(n)
	prod := a.MultiplyVec(n)
	dot := a.Dot(n)
	refl := a.Reflect(n)
	neg := a.Negate()

	for i := 0; i < wide.Lanes; i++ {
		requireVecNear(t, testLanes[i].Add(testNormals[i]), sum.Lane(i), 1e-6)
		requireVecNear(t, testLanes[i].Subtract(testNormals[i]), diff.Lane(i), 1e-6)
		requireVecNear(t, testLanes[i].MultiplyVec(testNormals[i]), prod.Lane(i), 1e-6)
		require.InDelta(t, testLanes[i].Dot(testNormals[i]), dot[i], 1e-5)
		requireVecNear(t, testLanes[i].Reflect(testNormals[i]), refl.Lane(i), 1e-4)
		requireVecNear(t, testLanes[i].Negate(), neg.Lane(i), 0)
	}
}

func TestVec3x8_Normalize(t *testing.T) {
	c := pack(testLanes).Normalize()
	for i := 0; i < wide.Lanes; i++ {
		expected := testLanes[i].Normalize()
		requireVecNear(t, expected, c.Lane(i), tolerance)
		require.InDelta(t, 1, c.Lane(i).Length(), tolerance)
	}
}

func TestVec3x8_Divide(t *testing.T) {
	c := Broadcast(NewVec3(3, 6, 9)).Divide(wide.SplatF32(3))
	requireVecNear(t, NewVec3(1, 2, 3), c.Lane(5), 3*tolerance)
}

func TestVec3x8_ReflectInvolution(t *testing.T) {
	v := pack(testLanes).Normalize()
	n := pack(testNormals)

	twice := v.Reflect(n).Reflect(n)
	for i := 0; i < wide.Lanes; i++ {
		requireVecNear(t, v.Lane(i), twice.Lane(i), 1e-5)
	}
}

func TestVec3x8_RefractIdentity(t *testing.T) {
	var v, n Vec3x8
	for i := 0; i < wide.Lanes; i++ {
		v.SetLane(i, NewVec3(float32(i)*0.2-0.7, -1, float32(i)*0.1).Normalize())
		n.SetLane(i, testNormals[i%2])
	}

	out := v.Refract(n, wide.SplatF32(1))
	for i := 0; i < wide.Lanes; i++ {
		requireVecNear(t, v.Lane(i), out.Lane(i), 1e-5)
	}
}

func TestVec3x8_RefractMatchesScalar(t *testing.T) {
	n := Broadcast(NewVec3(0, 1, 0))
	var v Vec3x8
	for i := 0; i < wide.Lanes; i++ {
		v.SetLane(i, NewVec3(float32(i)*0.1, -1, 0).Normalize())
	}

	ratio := wide.SplatF32(1 / 1.5)
	out := v.Refract(n, ratio)
	for i := 0; i < wide.Lanes; i++ {
		expected := v.Lane(i).Refract(NewVec3(0, 1, 0), 1/1.5)
		requireVecNear(t, expected, out.Lane(i), 1e-5)
	}
}

func TestVec3x8_BlendSelect(t *testing.T) {
	a := Broadcast(NewVec3(1, 1, 1))
	b := Broadcast(NewVec3(2, 2, 2))
	m := wide.F32x8{1, 0, 0, 1}.Gt(wide.F32x8{})

	blended := a.Blend(b, m)
	selected := a.Select(m)
	for i := 0; i < wide.Lanes; i++ {
		if m.Lane(i) {
			require.Equal(t, b.Lane(i), blended.Lane(i))
			require.Equal(t, a.Lane(i), selected.Lane(i))
		} else {
			require.Equal(t, a.Lane(i), blended.Lane(i))
			require.Equal(t, Vec3{}, selected.Lane(i))
		}
	}
}

func TestVec3x8_ReduceSum(t *testing.T) {
	sum := Broadcast(NewVec3(1, 2, 0.5)).ReduceSum()
	require.Equal(t, NewVec3(8, 16, 4), sum)
}

func TestRayCluster(t *testing.T) {
	r0 := NewRay(NewVec3(0, 0, 1), NewVec3(0, 0, -1))
	r1 := NewRay(NewVec3(1, 2, 3), NewVec3(1, 0, 0))
	rc := NewRayCluster(r0, r1)

	require.Equal(t, r0, rc.Lane(0))
	require.Equal(t, r1, rc.Lane(1))
	require.Equal(t, Ray{}, rc.Lane(7))

	p := rc.At(wide.SplatF32(2))
	require.Equal(t, r0.At(2), p.Lane(0))
	require.Equal(t, r1.At(2), p.Lane(1))
}
