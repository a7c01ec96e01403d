package scene

import (
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/geometry"
	"github.com/df07/go-simd-raytracer/pkg/material"
)

const (
	fieldExtent       = 11
	fieldSphereRadius = 0.2
	fieldSphereHeight = 0.2
)

// NewDefaultScene creates the default scene: three large spheres on a huge
// ground sphere surrounded by a field of small random spheres
func NewDefaultScene() *Scene {
	return BuildScene(core.NewLCG(0))
}

// BuildScene creates the default layout drawing every random choice from rng.
// The same seed always produces the same scene.
func BuildScene(rng *core.LCG) *Scene {
	spheres := make([]geometry.Sphere, 0, 4+(2*fieldExtent)*(2*fieldExtent))
	spheres = append(spheres,
		geometry.NewSphere(core.NewVec3(-1, 1, -2.5), 1, material.RedLambertian),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.Glass),
		geometry.NewSphere(core.NewVec3(1, 1, 2.5), 1, material.CopperMetallic),
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.SilverLambertian),
	)

	for a := -fieldExtent; a < fieldExtent; a++ {
		for b := -fieldExtent; b < fieldExtent; b++ {
			chooseMat := rng.Float32In(0, 1)
			center := core.NewVec3(
				float32(a)+rng.Float32In(0, 1),
				fieldSphereHeight,
				float32(b)+0.9*rng.Float32In(0, 1),
			)

			var mat material.Material
			switch {
			case chooseMat < 0.3:
				albedo := randomColor(rng, 0, 1)
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.7:
				albedo := randomColor(rng, 0.5, 1)
				mat = material.NewMetal(albedo)
			default:
				mat = material.Glass
			}
			spheres = append(spheres, geometry.NewSphere(center, fieldSphereRadius, mat))
		}
	}

	return &Scene{
		Spheres:      spheres,
		Background:   White,
		CameraOrigin: DefaultCameraOrigin,
	}
}

func randomColor(rng *core.LCG, lo, hi float32) core.Vec3 {
	r := rng.Float32In(lo, hi)
	g := rng.Float32In(lo, hi)
	b := rng.Float32In(lo, hi)
	return core.NewVec3(r, g, b)
}
