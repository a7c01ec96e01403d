package material

import "github.com/df07/go-simd-raytracer/pkg/core"

// scatterLambertian offsets the normal by a random unit vector. This only
// approximates cosine-weighted sampling because the random vector comes from
// a normalized cube sample.
func scatterLambertian(hit HitRecord8, sampler core.Sampler) core.Vec3x8 {
	return hit.Normal.Add(sampler.UnitVector())
}

func scatterLambertianRay(hit HitRecord, sampler core.ScalarSampler) core.Vec3 {
	return hit.Normal.Add(sampler.UnitVector())
}
