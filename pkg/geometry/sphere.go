package geometry

import (
	"math"

	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

// TMin is the smallest accepted hit distance. It keeps scattered rays from
// re-hitting the surface they just left.
const TMin = 0.0013

// Infinity is the tMax used when nothing bounds the search.
var Infinity = float32(math.Inf(1))

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere.
// Only dielectric spheres accept the far root, so rays can leave glass from inside.
func (s Sphere) Hit(ray core.Ray, tMin, tMax float32) (material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	a := ray.Direction.Dot(ray.Direction)
	b := ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}
	sqrtD := float32(math.Sqrt(float64(discriminant)))

	root := (b - sqrtD) / a
	if root <= tMin || root >= tMax {
		if s.Material.Kind != material.Dielectric {
			return material.HitRecord{}, false
		}
		root = (b + sqrtD) / a
		if root <= tMin || root >= tMax {
			return material.HitRecord{}, false
		}
	}

	rec := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := rec.Point.Subtract(s.Center).Multiply(1 / s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)

	return rec, true
}

// HitCluster intersects all 8 rays with the sphere and returns the hit
// distance per lane, or 0 for lanes that miss. tMax is per lane so callers can
// pass the closest distance found so far.
func (s Sphere) HitCluster(rays core.RayCluster, tMin float32, tMax wide.F32x8) wide.F32x8 {
	oc := core.Broadcast(s.Center).Subtract(rays.Origin)

	a := rays.Direction.Dot(rays.Direction)
	b := rays.Direction.Dot(oc)
	c := oc.Dot(oc).Sub(wide.SplatF32(s.Radius * s.Radius))

	discriminant := b.Mul(b).Sub(a.Mul(c))
	hasRoots := discriminant.Ge(wide.F32x8{})
	if !hasRoots.Any() {
		return wide.F32x8{}
	}

	sqrtD := discriminant.Select(hasRoots).Sqrt()
	rcpA := a.Rcp()
	lo := wide.SplatF32(tMin)

	near := b.Sub(sqrtD).Mul(rcpA)
	nearOK := near.Gt(lo).And(near.Lt(tMax)).And(hasRoots)
	t := near.Select(nearOK)

	if s.Material.Kind == material.Dielectric {
		far := b.Add(sqrtD).Mul(rcpA)
		farOK := far.Gt(lo).And(far.Lt(tMax)).And(hasRoots).AndNot(nearOK)
		t = wide.Blend(t, far, farOK)
	}
	return t
}
