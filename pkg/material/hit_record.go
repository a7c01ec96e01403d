package material

import (
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

// HitRecord contains information about a single ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the ray
	T         float32   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// HitRecord8 holds the nearest hit of each lane of a ray cluster.
// A lane with T == 0 missed everything and its other fields are zero.
type HitRecord8 struct {
	T         wide.F32x8
	Point     core.Vec3x8
	Normal    core.Vec3x8
	FrontFace wide.Mask
	Material  Material8
}

// Hits returns the lanes that hit something
func (h HitRecord8) Hits() wide.Mask {
	return h.T.Gt(wide.F32x8{})
}

// Lane extracts lane i. ok is false when the lane missed.
func (h HitRecord8) Lane(i int) (rec HitRecord, ok bool) {
	if h.T[i] <= 0 {
		return HitRecord{}, false
	}
	return HitRecord{
		Point:     h.Point.Lane(i),
		Normal:    h.Normal.Lane(i),
		T:         h.T[i],
		FrontFace: h.FrontFace.Lane(i),
		Material:  h.Material.Lane(i),
	}, true
}
