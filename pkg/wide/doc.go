// Package wide provides the fixed-width lane types the path tracer is built on.
//
// Every type here holds 8 lanes in a plain array so the Go compiler can keep the
// loops tight and, on supported targets, auto-vectorize them. The package is the
// only place that knows the lane count; everything above it talks in terms of
// F32x8, I32x8 and Mask.
//
// # Masks
//
// A Mask lane is either all bits set (0xFFFFFFFF) or all bits clear. Masks come
// from comparisons only, never from arithmetic, and are combined with And, Or,
// Xor and AndNot. Conditional logic is expressed as Blend/Select over a mask
// instead of branching per lane:
//
//	hit := t.Gt(tMin).And(t.Lt(tMax))
//	best = wide.Blend(best, t, hit)
//
// # Approximations
//
// Rcp and Rsqrt trade exactness for speed. Their relative error is bounded by
// Tolerance; callers that divide or normalize through them inherit that bound.
package wide

// Lanes is the number of lanes in every wide type.
const Lanes = 8
