package geometry

import (
	"testing"

	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/wide"
	"github.com/stretchr/testify/require"
)

func testScene() []Sphere {
	return []Sphere{
		NewSphere(core.NewVec3(0, 0, -5), 1, material.RedLambertian),
		NewSphere(core.NewVec3(3, 0, -6), 1.5, material.Glass),
		NewSphere(core.NewVec3(0, -101, -5), 100, material.SilverMetallic),
	}
}

func TestFindNearestHit_Miss(t *testing.T) {
	rays := core.RayCluster{
		Origin:    core.Broadcast(core.Vec3{}),
		Direction: core.Broadcast(core.NewVec3(0, 1, 0)),
	}

	rec := FindNearestHit(testScene(), rays, Infinity)
	require.False(t, rec.Hits().Any())
	require.Equal(t, material.HitRecord8{}, rec)
}

func TestFindNearestHit_ClosestWinsRegardlessOfOrder(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -3), 1, material.RedLambertian)
	far := NewSphere(core.NewVec3(0, 0, -10), 1, material.GoldMetallic)
	rays := core.RayCluster{
		Origin:    core.Broadcast(core.Vec3{}),
		Direction: core.Broadcast(core.NewVec3(0, 0, -1)),
	}

	for _, order := range [][]Sphere{{near, far}, {far, near}} {
		rec := FindNearestHit(order, rays, Infinity)
		for i := 0; i < wide.Lanes; i++ {
			require.InEpsilon(t, 2, rec.T[i], 1e-3)
			require.Equal(t, material.RedLambertian, rec.Material.Lane(i))
		}
	}
}

func TestFindNearestHit_TieGoesToFirstSphere(t *testing.T) {
	first := NewSphere(core.NewVec3(0, 0, -4), 1, material.RedLambertian)
	second := NewSphere(core.NewVec3(0, 0, -4), 1, material.GreenMetallic)
	rays := core.RayCluster{
		Origin:    core.Broadcast(core.Vec3{}),
		Direction: core.Broadcast(core.NewVec3(0, 0, -1)),
	}

	rec := FindNearestHit([]Sphere{first, second}, rays, Infinity)
	for i := 0; i < wide.Lanes; i++ {
		require.Equal(t, material.RedLambertian, rec.Material.Lane(i))
	}

	rec = FindNearestHit([]Sphere{second, first}, rays, Infinity)
	for i := 0; i < wide.Lanes; i++ {
		require.Equal(t, material.GreenMetallic, rec.Material.Lane(i))
	}
}

func TestFindNearestHit_MissLanesAreZeroed(t *testing.T) {
	var rays core.RayCluster
	for i := 0; i < wide.Lanes; i++ {
		if i < 4 {
			rays.Direction.SetLane(i, core.NewVec3(0, 0, -1))
		} else {
			rays.Direction.SetLane(i, core.NewVec3(0, 1, 0))
		}
	}

	rec := FindNearestHit(testScene(), rays, Infinity)
	require.Equal(t, 4, rec.Hits().Count())
	for i := 4; i < wide.Lanes; i++ {
		require.Equal(t, float32(0), rec.T[i])
		require.Equal(t, core.Vec3{}, rec.Point.Lane(i))
		require.Equal(t, core.Vec3{}, rec.Normal.Lane(i))
		require.False(t, rec.FrontFace.Lane(i))
	}
	for i := 0; i < 4; i++ {
		require.True(t, rec.FrontFace.Lane(i))
		requireVecNear(t, core.NewVec3(0, 0, 1), rec.Normal.Lane(i), tolerance)
	}
}

func TestFindNearestHit_LaneIndependence(t *testing.T) {
	spheres := testScene()
	rays := []core.Ray{
		core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)),
		core.NewRay(core.Vec3{}, core.NewVec3(3, 0, -6)),
		core.NewRay(core.Vec3{}, core.NewVec3(0, -1, -2)),
		core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)),
		core.NewRay(core.NewVec3(3, 0, -6), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0.1, 0.2, 0), core.NewVec3(0.05, 0.1, -1)),
		core.NewRay(core.NewVec3(-1, 3, 0), core.NewVec3(0.3, -1, -1.2)),
		core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
	}
	cluster := core.NewRayCluster(rays...)

	rec := FindNearestHit(spheres, cluster, Infinity)
	for i, ray := range rays {
		expected, _, ok := FindNearestHitRay(spheres, ray, Infinity)
		got, gotOK := rec.Lane(i)
		require.Equal(t, ok, gotOK, "lane %d", i)
		if !ok {
			continue
		}
		require.InEpsilon(t, expected.T, got.T, 1e-3, "lane %d", i)
		requireVecNear(t, expected.Point, got.Point, 1e-2)
		requireVecNear(t, expected.Normal, got.Normal, 1e-2)
		require.Equal(t, expected.FrontFace, got.FrontFace, "lane %d", i)
		require.Equal(t, expected.Material, got.Material, "lane %d", i)
	}
}

func TestFindNearestHitRay_Index(t *testing.T) {
	spheres := testScene()

	_, index, ok := FindNearestHitRay(spheres, core.NewRay(core.Vec3{}, core.NewVec3(3, 0, -6)), Infinity)
	require.True(t, ok)
	require.Equal(t, 1, index)

	_, index, ok = FindNearestHitRay(spheres, core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), Infinity)
	require.False(t, ok)
	require.Equal(t, -1, index)
}

func TestSphereCluster_Merge(t *testing.T) {
	var sc SphereCluster
	a := NewSphere(core.NewVec3(1, 2, 3), 4, material.GoldLambertian)
	b := NewSphere(core.NewVec3(-1, -2, -3), 0.5, material.Glass)

	sc.Merge(a, wide.MaskAll())
	sc.Merge(b, wide.F32x8{1, 0, 1}.Gt(wide.F32x8{}))

	require.Equal(t, b.Center, sc.Center.Lane(0))
	require.Equal(t, a.Center, sc.Center.Lane(1))
	require.Equal(t, float32(0.5), sc.Radius[2])
	require.Equal(t, float32(4), sc.Radius[3])
	require.Equal(t, material.Glass, sc.Material.Lane(2))
	require.Equal(t, material.GoldLambertian, sc.Material.Lane(7))
}
