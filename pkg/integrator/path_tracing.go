package integrator

import (
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/geometry"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

// PathTracer bounces ray clusters through a sphere list and accumulates the
// attenuation of every surface they hit.
type PathTracer struct {
	Spheres    []geometry.Sphere
	Background core.Vec3
	MaxDepth   int
}

// NewPathTracer creates a new path tracer
func NewPathTracer(spheres []geometry.Sphere, background core.Vec3, maxDepth int) *PathTracer {
	return &PathTracer{
		Spheres:    spheres,
		Background: background,
		MaxDepth:   maxDepth,
	}
}

// Trace runs the bounce loop for up to MaxDepth iterations.
//
// Every lane starts white and is multiplied by the albedo of each surface it
// hits. The loop stops early once no lane hits anything; at that point every
// lane that has missed at least once is tinted by the background. Lanes still
// bouncing when MaxDepth runs out keep their accumulated attenuation without a
// background tint.
func (pt *PathTracer) Trace(rays core.RayCluster, sampler core.Sampler) (core.Vec3x8, int) {
	one := core.Broadcast(core.NewVec3(1, 1, 1))
	background := core.Broadcast(pt.Background)
	colors := one
	everMissed := wide.MaskNone()
	bounces := 0

	for depth := 0; depth < pt.MaxDepth; depth++ {
		hit := geometry.FindNearestHit(pt.Spheres, rays, geometry.Infinity)
		hits := hit.Hits()
		everMissed = everMissed.Or(hits.Not())

		if !hits.Any() {
			colors = colors.MultiplyVec(one.Blend(background, everMissed))
			break
		}

		rays = material.Scatter(rays, hit, sampler)
		colors = colors.MultiplyVec(one.Blend(hit.Material.Albedo, hits))
		bounces++
	}
	return colors, bounces
}
