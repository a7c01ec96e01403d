package material

import (
	"strings"

	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

// Kind selects how a surface scatters light
type Kind int32

const (
	Metallic Kind = iota
	Lambertian
	Dielectric
)

// String returns the lowercase kind name used in scene files and logs
func (k Kind) String() string {
	switch k {
	case Metallic:
		return "metallic"
	case Lambertian:
		return "lambertian"
	case Dielectric:
		return "dielectric"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind name back into a Kind
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "metallic", "metal":
		return Metallic, true
	case "lambertian", "diffuse":
		return Lambertian, true
	case "dielectric", "glass":
		return Dielectric, true
	default:
		return 0, false
	}
}

// Material is an attenuation color paired with a scattering kind.
// Materials are plain values and never change after creation.
type Material struct {
	Albedo core.Vec3
	Kind   Kind
}

// NewMetal creates a mirror-like material
func NewMetal(albedo core.Vec3) Material {
	return Material{Albedo: albedo, Kind: Metallic}
}

// NewLambertian creates a diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Albedo: albedo, Kind: Lambertian}
}

// NewDielectric creates a transparent material with refractive index IOR
func NewDielectric(albedo core.Vec3) Material {
	return Material{Albedo: albedo, Kind: Dielectric}
}

// Palette
var (
	Silver = core.NewVec3(0.5, 0.5, 0.5)
	Grey   = core.NewVec3(0.5, 0.5, 0.5)
	White  = core.NewVec3(1, 1, 1)
	Red    = core.NewVec3(0.9, 0.2, 0.2)
	Gold   = core.NewVec3(0.9, 0.75, 0.54)
	Copper = core.NewVec3(0.59, 0.34, 0.29)
	Green  = core.NewVec3(0, 1, 0)
	Moon   = core.NewVec3(100, 100, 100)
)

// Presets
var (
	SilverMetallic = NewMetal(Silver)
	RedMetallic    = NewMetal(Red)
	GoldMetallic   = NewMetal(Gold)
	CopperMetallic = NewMetal(Copper)
	GreenMetallic  = NewMetal(Green)

	SilverLambertian = NewLambertian(Silver)
	RedLambertian    = NewLambertian(Red)
	GoldLambertian   = NewLambertian(Gold)
	StarLambertian   = NewLambertian(Moon)
	GreyLambertian   = NewLambertian(Grey)

	Glass = NewDielectric(White)
)

// Material8 holds one material per lane
type Material8 struct {
	Albedo core.Vec3x8
	Kind   wide.I32x8
}

// Broadcast8 replicates m into every lane
func Broadcast8(m Material) Material8 {
	return Material8{
		Albedo: core.Broadcast(m.Albedo),
		Kind:   wide.SplatI32(int32(m.Kind)),
	}
}

// Blend returns other in lanes where mask is set and m elsewhere
func (m Material8) Blend(other Material8, mask wide.Mask) Material8 {
	return Material8{
		Albedo: m.Albedo.Blend(other.Albedo, mask),
		Kind:   wide.BlendI32(m.Kind, other.Kind, mask),
	}
}

// Is returns the lanes whose material has kind k
func (m Material8) Is(k Kind) wide.Mask {
	return m.Kind.Eq(wide.SplatI32(int32(k)))
}

// Lane extracts the material of lane i
func (m Material8) Lane(i int) Material {
	return Material{Albedo: m.Albedo.Lane(i), Kind: Kind(m.Kind[i])}
}
