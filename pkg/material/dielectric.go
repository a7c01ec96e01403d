package material

import (
	"math"

	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

// IOR is the refractive index of every dielectric material
const IOR = 1.5

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float32) float32 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	c := 1 - cosine
	return r0 + (1-r0)*c*c*c*c*c
}

// Reflectance8 is Reflectance for every lane
func Reflectance8(cosine, refractionRatio wide.F32x8) wide.F32x8 {
	one := wide.SplatF32(1)
	r0 := one.Sub(refractionRatio).Div(one.Add(refractionRatio))
	r0 = r0.Mul(r0)
	c := one.Sub(cosine)
	c5 := c.Mul(c).Mul(c).Mul(c).Mul(c)
	return one.Sub(r0).FMA(c5, r0)
}

// scatterDielectric refracts lanes that can refract and whose reflectance is
// below a fresh random draw. The remaining lanes reflect only when the ray hit
// the front face; back face lanes keep their incoming direction.
func scatterDielectric(rays core.RayCluster, hit HitRecord8, sampler core.Sampler) core.Vec3x8 {
	one := wide.SplatF32(1)
	ratio := wide.Blend(wide.SplatF32(IOR), wide.SplatF32(1/IOR), hit.FrontFace)

	unit := rays.Direction.Normalize()
	cosTheta := unit.Negate().Dot(hit.Normal).Min(one)
	sinTheta := one.Sub(cosTheta.Mul(cosTheta)).Max(wide.F32x8{}).Sqrt()

	canRefract := ratio.Mul(sinTheta).Le(one)
	lowReflectance := Reflectance8(cosTheta, ratio).Lt(sampler.Get1D())
	refract := canRefract.And(lowReflectance)
	reflect := refract.Not().And(hit.FrontFace)

	dir := rays.Direction
	if refract.Any() {
		dir = dir.Blend(unit.Refract(hit.Normal, ratio), refract)
	}
	if reflect.Any() {
		dir = dir.Blend(unit.Reflect(hit.Normal), reflect)
	}
	return dir
}

func scatterDielectricRay(rayIn core.Ray, hit HitRecord, sampler core.ScalarSampler) core.Vec3 {
	ratio := float32(IOR)
	if hit.FrontFace {
		ratio = 1 / IOR
	}

	unit := rayIn.Direction.Normalize()
	cosTheta := min(unit.Negate().Dot(hit.Normal), 1)
	sinTheta := float32(math.Sqrt(float64(max(1-cosTheta*cosTheta, 0))))

	canRefract := ratio*sinTheta <= 1
	refract := canRefract && Reflectance(cosTheta, ratio) < sampler.Get1D()

	switch {
	case refract:
		return unit.Refract(hit.Normal, ratio)
	case hit.FrontFace:
		return unit.Reflect(hit.Normal)
	default:
		return rayIn.Direction
	}
}
