package scene

import (
	"sort"
	"strings"

	"github.com/df07/go-simd-raytracer/pkg/core"
)

// Background presets
var (
	White = core.NewVec3(1, 1, 1)
	Sky   = core.NewVec3(0.5, 0.7, 1)
	Night = core.NewVec3(0.02, 0.08, 0.35)
)

var backgrounds = map[string]core.Vec3{
	"white": White,
	"sky":   Sky,
	"night": Night,
}

// BackgroundByName returns the preset with the given case-insensitive name
func BackgroundByName(name string) (core.Vec3, bool) {
	bg, ok := backgrounds[strings.ToLower(strings.TrimSpace(name))]
	return bg, ok
}

// BackgroundNames returns the preset names in alphabetical order
func BackgroundNames() []string {
	names := make([]string, 0, len(backgrounds))
	for name := range backgrounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
