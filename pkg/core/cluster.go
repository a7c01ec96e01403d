package core

import "github.com/df07/go-simd-raytracer/pkg/wide"

// Vec3x8 holds 8 independent vectors, one per lane, stored axis by axis.
// All operations are lane-wise except ReduceSum.
type Vec3x8 struct {
	X, Y, Z wide.F32x8
}

// Broadcast replicates v into every lane.
func Broadcast(v Vec3) Vec3x8 {
	return Vec3x8{
		X: wide.SplatF32(v.X),
		Y: wide.SplatF32(v.Y),
		Z: wide.SplatF32(v.Z),
	}
}

// Add returns the lane-wise sum of two clusters
func (v Vec3x8) Add(other Vec3x8) Vec3x8 {
	return Vec3x8{v.X.Add(other.X), v.Y.Add(other.Y), v.Z.Add(other.Z)}
}

// Subtract returns the lane-wise difference of two clusters
func (v Vec3x8) Subtract(other Vec3x8) Vec3x8 {
	return Vec3x8{v.X.Sub(other.X), v.Y.Sub(other.Y), v.Z.Sub(other.Z)}
}

// MultiplyVec returns the component-wise product of two clusters
func (v Vec3x8) MultiplyVec(other Vec3x8) Vec3x8 {
	return Vec3x8{v.X.Mul(other.X), v.Y.Mul(other.Y), v.Z.Mul(other.Z)}
}

// Multiply scales every lane by its own scalar
func (v Vec3x8) Multiply(s wide.F32x8) Vec3x8 {
	return Vec3x8{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// Divide scales every lane by the approximate reciprocal of s.
func (v Vec3x8) Divide(s wide.F32x8) Vec3x8 {
	return v.Multiply(s.Rcp())
}

// Dot returns the per-lane dot product
func (v Vec3x8) Dot(other Vec3x8) wide.F32x8 {
	return v.X.FMA(other.X, v.Y.FMA(other.Y, v.Z.Mul(other.Z)))
}

// LengthSquared returns the per-lane squared magnitude
func (v Vec3x8) LengthSquared() wide.F32x8 {
	return v.Dot(v)
}

// Negate flips the sign of every component
func (v Vec3x8) Negate() Vec3x8 {
	return Vec3x8{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

// Normalize scales every lane by the approximate reciprocal square root of its
// squared length. Zero-length lanes become non-finite; callers mask them out.
func (v Vec3x8) Normalize() Vec3x8 {
	return v.Multiply(v.LengthSquared().Rsqrt())
}

// Reflect mirrors every lane about the matching lane of n: v - 2*dot(v,n)*n
func (v Vec3x8) Reflect(n Vec3x8) Vec3x8 {
	twoDot := v.Dot(n).Mul(wide.SplatF32(2))
	return v.Subtract(n.Multiply(twoDot))
}

// Refract bends every unit lane of v through the surface n with the per-lane
// index ratio. Lanes where ratio*sin(theta) > 1 produce meaningless directions;
// total internal reflection is handled by the caller.
func (v Vec3x8) Refract(n Vec3x8, ratio wide.F32x8) Vec3x8 {
	one := wide.SplatF32(1)
	cosTheta := v.Negate().Dot(n).Min(one)
	perp := v.Add(n.Multiply(cosTheta)).Multiply(ratio)
	parallelLen := one.Sub(perp.LengthSquared()).Abs().Sqrt().Neg()
	return perp.Add(n.Multiply(parallelLen))
}

// Blend returns other in lanes where m is set and v elsewhere.
func (v Vec3x8) Blend(other Vec3x8, m wide.Mask) Vec3x8 {
	return Vec3x8{
		X: wide.Blend(v.X, other.X, m),
		Y: wide.Blend(v.Y, other.Y, m),
		Z: wide.Blend(v.Z, other.Z, m),
	}
}

// Select zeroes every lane not set in m.
func (v Vec3x8) Select(m wide.Mask) Vec3x8 {
	return Vec3x8{v.X.Select(m), v.Y.Select(m), v.Z.Select(m)}
}

// Lane extracts lane i as a scalar vector.
func (v Vec3x8) Lane(i int) Vec3 {
	return Vec3{v.X[i], v.Y[i], v.Z[i]}
}

// SetLane overwrites lane i.
func (v *Vec3x8) SetLane(i int, value Vec3) {
	v.X[i] = value.X
	v.Y[i] = value.Y
	v.Z[i] = value.Z
}

// ReduceSum adds all lanes of each axis into one vector.
func (v Vec3x8) ReduceSum() Vec3 {
	return Vec3{v.X.ReduceSum(), v.Y.ReduceSum(), v.Z.ReduceSum()}
}

// RayCluster is 8 rays that travel through the scene together.
type RayCluster struct {
	Origin    Vec3x8
	Direction Vec3x8
}

// NewRayCluster packs up to 8 scalar rays into a cluster. Missing lanes stay zero.
func NewRayCluster(rays ...Ray) RayCluster {
	var rc RayCluster
	for i := 0; i < len(rays) && i < wide.Lanes; i++ {
		rc.Origin.SetLane(i, rays[i].Origin)
		rc.Direction.SetLane(i, rays[i].Direction)
	}
	return rc
}

// Lane extracts ray i.
func (rc RayCluster) Lane(i int) Ray {
	return Ray{Origin: rc.Origin.Lane(i), Direction: rc.Direction.Lane(i)}
}

// At returns origin + t*direction for every lane
func (rc RayCluster) At(t wide.F32x8) Vec3x8 {
	return rc.Origin.Add(rc.Direction.Multiply(t))
}
