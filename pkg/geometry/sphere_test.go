package geometry

import (
	"testing"

	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/wide"
	"github.com/stretchr/testify/require"
)

const tolerance = 2e-3

func requireVecNear(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	require.InDelta(t, expected.X, actual.X, delta, "x: expected %v, got %v", expected, actual)
	require.InDelta(t, expected.Y, actual.Y, delta, "y: expected %v, got %v", expected, actual)
	require.InDelta(t, expected.Z, actual.Z, delta, "z: expected %v, got %v", expected, actual)
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.GreyLambertian)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, TMin, Infinity)
	require.False(t, isHit, "expected miss, got hit at t=%f", hit.T)
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	tests := []struct {
		name           string
		mat            material.Material
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectHit      bool
		expectedT      float32
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			mat:            material.GreyLambertian,
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectHit:      true,
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit inside glass",
			mat:            material.Glass,
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectHit:      true,
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:         "opaque sphere ignores the far root",
			mat:          material.GreyLambertian,
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, 1),
			expectHit:    false,
		},
		{
			name:         "sphere behind the ray",
			mat:          material.Glass,
			rayOrigin:    core.NewVec3(0, 0, 3),
			rayDirection: core.NewVec3(0, 0, 1),
			expectHit:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, tt.mat)
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)

			hit, isHit := sphere.Hit(ray, TMin, Infinity)
			require.Equal(t, tt.expectHit, isHit)
			if !tt.expectHit {
				return
			}
			require.InDelta(t, tt.expectedT, hit.T, 1e-6)
			require.Equal(t, tt.expectedFront, hit.FrontFace)
			requireVecNear(t, tt.expectedNormal, hit.Normal, 1e-6)
			require.Equal(t, tt.mat, hit.Material)
		})
	}
}

func TestSphere_HitCluster_Distance(t *testing.T) {
	radii := []float32{0.5, 1, 2, 10}
	for _, r := range radii {
		sphere := NewSphere(core.Vec3{}, r, material.GreyLambertian)

		var rays core.RayCluster
		var expected wide.F32x8
		for i := 0; i < wide.Lanes; i++ {
			d := r + 0.5 + float32(i)*1.7
			rays.Origin.SetLane(i, core.NewVec3(0, 0, d))
			rays.Direction.SetLane(i, core.NewVec3(0, 0, -1))
			expected[i] = d - r
		}

		got := sphere.HitCluster(rays, TMin, wide.SplatF32(Infinity))
		for i := range got {
			require.InEpsilon(t, expected[i], got[i], 1e-3, "radius %v lane %d", r, i)
		}
	}
}

func TestSphere_HitCluster_Bounds(t *testing.T) {
	sphere := NewSphere(core.Vec3{}, 1, material.GreyLambertian)
	rays := core.RayCluster{
		Origin:    core.Broadcast(core.NewVec3(0, 0, 5)),
		Direction: core.Broadcast(core.NewVec3(0, 0, -1)),
	}

	// the hit at t=4 lies outside (TMin, 3)
	got := sphere.HitCluster(rays, TMin, wide.SplatF32(3))
	require.Equal(t, wide.F32x8{}, got)

	// rays pointing away never hit
	rays.Direction = core.Broadcast(core.NewVec3(0, 1, 0))
	got = sphere.HitCluster(rays, TMin, wide.SplatF32(Infinity))
	require.Equal(t, wide.F32x8{}, got)
}

func TestSphere_HitCluster_DielectricFarRootPerLane(t *testing.T) {
	sphere := NewSphere(core.Vec3{}, 1, material.Glass)

	var rays core.RayCluster
	for i := 0; i < wide.Lanes; i++ {
		rays.Direction.SetLane(i, core.NewVec3(0, 0, 1))
		if i%2 == 0 {
			// inside the sphere: only the far root is ahead
			rays.Origin.SetLane(i, core.Vec3{})
		} else {
			rays.Origin.SetLane(i, core.NewVec3(0, 0, -3))
		}
	}

	got := sphere.HitCluster(rays, TMin, wide.SplatF32(Infinity))
	for i := range got {
		if i%2 == 0 {
			require.InEpsilon(t, 1, got[i], 1e-3)
		} else {
			require.InEpsilon(t, 2, got[i], 1e-3)
		}
	}
}
