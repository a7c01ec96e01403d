package material

import (
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

// scatterMetal mirrors every lane about its normal. Lanes whose reflection
// points into the surface are absorbed and get a zero direction.
func scatterMetal(rays core.RayCluster, hit HitRecord8) core.Vec3x8 {
	reflected := rays.Direction.Reflect(hit.Normal).Normalize()
	outward := reflected.Dot(hit.Normal).Gt(wide.F32x8{})
	return reflected.Select(outward)
}

func scatterMetalRay(rayIn core.Ray, hit HitRecord) core.Vec3 {
	reflected := rayIn.Direction.Reflect(hit.Normal).Normalize()
	if reflected.Dot(hit.Normal) <= 0 {
		return core.Vec3{}
	}
	return reflected
}
