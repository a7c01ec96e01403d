package material

import "github.com/df07/go-simd-raytracer/pkg/core"

// Scatter computes the next ray of every lane that hit something. Each
// material path runs only when at least one lane needs it and is merged back
// by mask; lanes that missed keep their ray unchanged. Scattered lanes start
// at the hit point.
func Scatter(rays core.RayCluster, hit HitRecord8, sampler core.Sampler) core.RayCluster {
	hits := hit.Hits()
	out := rays

	if metal := hit.Material.Is(Metallic).And(hits); metal.Any() {
		out.Direction = out.Direction.Blend(scatterMetal(rays, hit), metal)
	}
	if diffuse := hit.Material.Is(Lambertian).And(hits); diffuse.Any() {
		out.Direction = out.Direction.Blend(scatterLambertian(hit, sampler), diffuse)
	}
	if glass := hit.Material.Is(Dielectric).And(hits); glass.Any() {
		out.Direction = out.Direction.Blend(scatterDielectric(rays, hit, sampler), glass)
	}

	out.Origin = out.Origin.Blend(hit.Point, hits)
	return out
}

// Scatter computes the next ray for a single hit using the same rules as the
// cluster Scatter.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.ScalarSampler) core.Ray {
	var dir core.Vec3
	switch m.Kind {
	case Metallic:
		dir = scatterMetalRay(rayIn, hit)
	case Lambertian:
		dir = scatterLambertianRay(hit, sampler)
	case Dielectric:
		dir = scatterDielectricRay(rayIn, hit, sampler)
	default:
		dir = rayIn.Direction
	}
	return core.NewRay(hit.Point, dir)
}
