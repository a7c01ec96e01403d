package geometry

import (
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

// SphereCluster tracks, per lane, the sphere that produced the closest hit so
// far during one nearest-hit scan.
type SphereCluster struct {
	Center   core.Vec3x8
	Radius   wide.F32x8
	Material material.Material8
}

// Merge makes s the winner of every lane set in mask.
func (sc *SphereCluster) Merge(s Sphere, mask wide.Mask) {
	sc.Center = sc.Center.Blend(core.Broadcast(s.Center), mask)
	sc.Radius = wide.Blend(sc.Radius, wide.SplatF32(s.Radius), mask)
	sc.Material = sc.Material.Blend(material.Broadcast8(s.Material), mask)
}

// FindNearestHit scans the spheres in order and records the closest hit of
// every lane. A later sphere only replaces the current winner when it is
// strictly closer, so the earlier sphere wins ties. Lanes that miss every
// sphere keep T == 0 and zeroed point and normal.
func FindNearestHit(spheres []Sphere, rays core.RayCluster, tMax float32) material.HitRecord8 {
	closest := wide.SplatF32(tMax)
	var best wide.F32x8
	var winner SphereCluster

	for _, s := range spheres {
		t := s.HitCluster(rays, TMin, closest)
		hit := t.Gt(wide.F32x8{})
		if !hit.Any() {
			continue
		}
		closest = wide.Blend(closest, t, hit)
		best = wide.Blend(best, t, hit)
		winner.Merge(s, hit)
	}

	hits := best.Gt(wide.F32x8{})
	if !hits.Any() {
		return material.HitRecord8{}
	}

	point := rays.At(best)
	outward := point.Subtract(winner.Center).Multiply(winner.Radius.Rcp())
	frontFace := rays.Direction.Dot(outward).Lt(wide.F32x8{})
	normal := outward.Blend(outward.Negate(), frontFace.Not())

	return material.HitRecord8{
		T:         best,
		Point:     point.Select(hits),
		Normal:    normal.Select(hits),
		FrontFace: frontFace.And(hits),
		Material:  winner.Material,
	}
}

// FindNearestHitRay is the single-ray counterpart of FindNearestHit. It also
// reports the index of the winning sphere, or -1 on a miss.
func FindNearestHitRay(spheres []Sphere, ray core.Ray, tMax float32) (material.HitRecord, int, bool) {
	var best material.HitRecord
	index := -1
	closest := tMax

	for i, s := range spheres {
		if rec, ok := s.Hit(ray, TMin, closest); ok {
			best = rec
			index = i
			closest = rec.T
		}
	}
	return best, index, index >= 0
}
