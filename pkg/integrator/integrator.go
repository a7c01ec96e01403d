package integrator

import "github.com/df07/go-simd-raytracer/pkg/core"

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace computes the color of every lane of a ray cluster.
	// Returns (lane colors, bounces taken)
	Trace(rays core.RayCluster, sampler core.Sampler) (core.Vec3x8, int)
}

// SampleGroups traces every cluster and sums all lanes of all results into a
// single color. The caller divides by the sample count.
func SampleGroups(it Integrator, clusters []core.RayCluster, sampler core.Sampler) (core.Vec3, int) {
	var sum core.Vec3x8
	bounces := 0
	for _, rays := range clusters {
		colors, n := it.Trace(rays, sampler)
		sum = sum.Add(colors)
		bounces += n
	}
	return sum.ReduceSum(), bounces
}
