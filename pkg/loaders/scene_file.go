package loaders

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/geometry"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/scene"
	"github.com/segmentio/encoding/json"
)

const (
	// ErrTypeInvalidScene marks a scene description that cannot be rendered.
	ErrTypeInvalidScene = "invalid_scene"
	// ErrTypeInvalidPath marks a scene file path outside the allowed locations.
	ErrTypeInvalidPath = "invalid_path"

	maxPathLength = 512
)

// SceneFile is the JSON form of a scene
type SceneFile struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Group       string          `json:"group,omitempty"`
	Background  json.RawMessage `json:"background,omitempty"` // [r, g, b] or a preset name
	Camera      *[3]float32     `json:"camera,omitempty"`
	Spheres     []SphereFile    `json:"spheres"`
}

// SphereFile is the JSON form of a sphere
type SphereFile struct {
	Center   [3]float32   `json:"center"`
	Radius   float32      `json:"radius"`
	Material MaterialFile `json:"material"`
}

// MaterialFile is the JSON form of a material
type MaterialFile struct {
	Kind   string      `json:"kind"`
	Albedo *[3]float32 `json:"albedo,omitempty"`
}

// LoadScene decodes and validates a JSON scene description
func LoadScene(r io.Reader) (*scene.Scene, error) {
	var file SceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, errors.New("decoding scene failed").
			WithType(ErrTypeInvalidScene).
			Wrap(err)
	}
	return file.Build()
}

// LoadSceneFile validates path and loads the scene it names. The path must
// be in a scenes directory or the temp directory.
func LoadSceneFile(path string) (*scene.Scene, error) {
	return loadSceneFile(path, "")
}

// LoadSceneFileIn loads a scene file that must live under dir
func LoadSceneFileIn(dir, path string) (*scene.Scene, error) {
	if dir == "" {
		return nil, errors.New("scenes directory cannot be empty").WithType(ErrTypeInvalidPath)
	}
	return loadSceneFile(path, dir)
}

func loadSceneFile(path, root string) (*scene.Scene, error) {
	if err := validateFilePath(path, root); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening scene file failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	s, err := LoadScene(f)
	if err != nil {
		return nil, errors.New("loading scene file failed").
			WithType(ErrTypeInvalidScene).
			WithTag("path", path).
			Wrap(err)
	}
	return s, nil
}

// Build converts the file form into a scene, rejecting values the renderer
// cannot handle
func (f SceneFile) Build() (*scene.Scene, error) {
	background, err := parseBackground(f.Background)
	if err != nil {
		return nil, err
	}

	s := &scene.Scene{
		Background:   background,
		CameraOrigin: scene.DefaultCameraOrigin,
		Spheres:      make([]geometry.Sphere, 0, len(f.Spheres)),
	}
	if f.Camera != nil {
		s.CameraOrigin = vec3(*f.Camera)
		if !finite(s.CameraOrigin) {
			return nil, errors.New("camera origin must be finite").
				WithType(ErrTypeInvalidScene).
				WithTag("camera", s.CameraOrigin)
		}
	}

	for i, sf := range f.Spheres {
		sphere, err := sf.build()
		if err != nil {
			return nil, errors.New("invalid sphere").
				WithType(ErrTypeInvalidScene).
				WithTag("sphere", i).
				Wrap(err)
		}
		s.Spheres = append(s.Spheres, sphere)
	}
	return s, nil
}

func (sf SphereFile) build() (geometry.Sphere, error) {
	center := vec3(sf.Center)
	if !finite(center) {
		return geometry.Sphere{}, errors.New("center must be finite").
			WithType(ErrTypeInvalidScene).
			WithTag("center", center)
	}
	if !(sf.Radius > 0) || math.IsInf(float64(sf.Radius), 0) {
		return geometry.Sphere{}, errors.New("radius must be positive").
			WithType(ErrTypeInvalidScene).
			WithTag("radius", sf.Radius)
	}

	mat, err := sf.Material.build()
	if err != nil {
		return geometry.Sphere{}, err
	}
	return geometry.NewSphere(center, sf.Radius, mat), nil
}

func (mf MaterialFile) build() (material.Material, error) {
	kind, ok := material.ParseKind(mf.Kind)
	if !ok {
		return material.Material{}, errors.New("unknown material kind").
			WithType(ErrTypeInvalidScene).
			WithTag("kind", mf.Kind)
	}

	albedo := material.White
	if mf.Albedo != nil {
		albedo = vec3(*mf.Albedo)
	} else if kind != material.Dielectric {
		return material.Material{}, errors.New("albedo is required").
			WithType(ErrTypeInvalidScene).
			WithTag("kind", mf.Kind)
	}
	if !finite(albedo) || albedo.X < 0 || albedo.Y < 0 || albedo.Z < 0 {
		return material.Material{}, errors.New("albedo must be finite and non-negative").
			WithType(ErrTypeInvalidScene).
			WithTag("albedo", albedo)
	}

	return material.Material{Albedo: albedo, Kind: kind}, nil
}

// parseBackground accepts a preset name or an RGB triple. The default is white.
func parseBackground(raw json.RawMessage) (core.Vec3, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return scene.White, nil
	}

	if raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return core.Vec3{}, errors.New("decoding background name failed").
				WithType(ErrTypeInvalidScene).
				Wrap(err)
		}
		bg, ok := scene.BackgroundByName(name)
		if !ok {
			return core.Vec3{}, errors.New("unknown background").
				WithType(ErrTypeInvalidScene).
				WithTag("background", name).
				WithTag("presets", strings.Join(scene.BackgroundNames(), ","))
		}
		return bg, nil
	}

	var rgb [3]float32
	if err := json.Unmarshal(raw, &rgb); err != nil {
		return core.Vec3{}, errors.New("decoding background color failed").
			WithType(ErrTypeInvalidScene).
			Wrap(err)
	}
	bg := vec3(rgb)
	if !finite(bg) || bg.X < 0 || bg.Y < 0 || bg.Z < 0 {
		return core.Vec3{}, errors.New("background must be finite and non-negative").
			WithType(ErrTypeInvalidScene).
			WithTag("background", bg)
	}
	return bg, nil
}

// validateFilePath validates a file path for security issues. A non-empty
// root restricts the file to that directory.
func validateFilePath(filename, root string) error {
	if filename == "" {
		return errors.New("filename cannot be empty").WithType(ErrTypeInvalidPath)
	}

	if strings.Contains(filename, "\x00") {
		return errors.New("null bytes are not allowed in file paths").WithType(ErrTypeInvalidPath)
	}

	cleanPath := filepath.Clean(filename)
	if len(cleanPath) > maxPathLength {
		return errors.New("file path is too long").
			WithType(ErrTypeInvalidPath).
			WithTag("max", maxPathLength)
	}

	if root != "" {
		if !withinDir(root, cleanPath) {
			return errors.New("file path must be in the scenes directory").
				WithType(ErrTypeInvalidPath).
				WithTag("path", filename).
				WithTag("dir", root)
		}
	} else {
		// Only files in a scenes directory, or the temp directory for tests
		inScenes := strings.HasPrefix(cleanPath, "scenes"+string(filepath.Separator)) ||
			strings.Contains(cleanPath, string(filepath.Separator)+"scenes"+string(filepath.Separator))
		if !inScenes && !strings.HasPrefix(cleanPath, os.TempDir()) {
			return errors.New("file path must be in a scenes directory").
				WithType(ErrTypeInvalidPath).
				WithTag("path", filename)
		}
	}

	if !strings.EqualFold(filepath.Ext(cleanPath), ".json") {
		return errors.New("only .json scene files are allowed").
			WithType(ErrTypeInvalidPath).
			WithTag("path", filename)
	}
	return nil
}

// withinDir reports whether path resolves to a location inside dir
func withinDir(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func vec3(v [3]float32) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func finite(v core.Vec3) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
