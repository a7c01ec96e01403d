package scene

import (
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/geometry"
	"github.com/df07/go-simd-raytracer/pkg/material"
)

// DefaultCameraOrigin is where the camera of the built-in scenes starts
var DefaultCameraOrigin = core.NewVec3(-1.2, 1, 5)

// Scene contains all the elements needed for rendering. It must not be
// modified once rendering has started.
type Scene struct {
	Spheres      []geometry.Sphere // Objects in the scene, in intersection order
	Background   core.Vec3         // Color of rays that escape the scene
	CameraOrigin core.Vec3         // Initial camera position
}

// GetSpheres returns the scene spheres
func (s *Scene) GetSpheres() []geometry.Sphere {
	return s.Spheres
}

// GetBackground returns the scene background color
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// GetCameraOrigin returns the initial camera position
func (s *Scene) GetCameraOrigin() core.Vec3 {
	return s.CameraOrigin
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}

// CountByKind returns how many spheres use each material kind
func (s *Scene) CountByKind() map[material.Kind]int {
	counts := make(map[material.Kind]int)
	for _, sphere := range s.Spheres {
		counts[sphere.Material.Kind]++
	}
	return counts
}

// NewSingleSphereScene places one unit sphere at the origin, seen from
// three units away
func NewSingleSphereScene(mat material.Material, background core.Vec3) *Scene {
	return &Scene{
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat),
		},
		Background:   background,
		CameraOrigin: core.NewVec3(0, 0, 3),
	}
}
