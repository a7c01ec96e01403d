package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/scene"
	"github.com/stretchr/testify/require"
)

const validScene = `{
	"name": "Trio",
	"background": [0.5, 0.7, 1],
	"camera": [0, 1, 4],
	"spheres": [
		{"center": [0, -100, 0], "radius": 100, "material": {"kind": "lambertian", "albedo": [0.5, 0.5, 0.5]}},
		{"center": [-1, 1, 0], "radius": 1, "material": {"kind": "metal", "albedo": [0.9, 0.75, 0.54]}},
		{"center": [1, 1, 0], "radius": 1, "material": {"kind": "glass"}}
	]
}`

func TestLoadScene(t *testing.T) {
	s, err := LoadScene(strings.NewReader(validScene))
	require.NoError(t, err)

	require.Equal(t, core.NewVec3(0.5, 0.7, 1), s.Background)
	require.Equal(t, core.NewVec3(0, 1, 4), s.CameraOrigin)
	require.Len(t, s.Spheres, 3)

	require.Equal(t, float32(100), s.Spheres[0].Radius)
	require.Equal(t, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), s.Spheres[0].Material)
	require.Equal(t, material.Metallic, s.Spheres[1].Material.Kind)
	require.Equal(t, material.Glass, s.Spheres[2].Material)
}

func TestLoadSceneDefaults(t *testing.T) {
	s, err := LoadScene(strings.NewReader(`{"spheres": []}`))
	require.NoError(t, err)

	require.Equal(t, scene.White, s.Background)
	require.Equal(t, scene.DefaultCameraOrigin, s.CameraOrigin)
	require.Empty(t, s.Spheres)
}

func TestLoadSceneBackgroundPreset(t *testing.T) {
	s, err := LoadScene(strings.NewReader(`{"background": "night", "spheres": []}`))
	require.NoError(t, err)
	require.Equal(t, scene.Night, s.Background)
}

func TestLoadSceneInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed", input: `{"spheres": [`},
		{name: "unknown field", input: `{"lights": []}`},
		{name: "zero radius", input: `{"spheres": [{"center": [0,0,0], "radius": 0, "material": {"kind": "glass"}}]}`},
		{name: "negative radius", input: `{"spheres": [{"center": [0,0,0], "radius": -1, "material": {"kind": "glass"}}]}`},
		{name: "unknown kind", input: `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"kind": "emissive", "albedo": [1,1,1]}}]}`},
		{name: "missing albedo", input: `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"kind": "metal"}}]}`},
		{name: "negative albedo", input: `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"kind": "metal", "albedo": [-1,0,0]}}]}`},
		{name: "unknown background", input: `{"background": "sunset", "spheres": []}`},
		{name: "negative background", input: `{"background": [0, -0.5, 0], "spheres": []}`},
		{name: "short background", input: `{"background": {"r": 1}, "spheres": []}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadScene(strings.NewReader(test.input))
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeInvalidScene), "got %v", err)
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trio.json")
	require.NoError(t, os.WriteFile(path, []byte(validScene), 0o644))

	s, err := LoadSceneFile(path)
	require.NoError(t, err)
	require.Len(t, s.Spheres, 3)
}

func TestLoadSceneFileMissing(t *testing.T) {
	_, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		valid bool
	}{
		{name: "scenes directory", path: "scenes/trio.json", valid: true},
		{name: "nested scenes directory", path: "../assets/scenes/trio.json", valid: true},
		{name: "temp directory", path: filepath.Join(os.TempDir(), "trio.json"), valid: true},
		{name: "empty", path: ""},
		{name: "outside scenes", path: "/etc/passwd.json"},
		{name: "traversal", path: "scenes/../../secret.json"},
		{name: "wrong extension", path: "scenes/trio.pbrt"},
		{name: "null byte", path: "scenes/trio\x00.json"},
		{name: "too long", path: "scenes/" + strings.Repeat("a", 600) + ".json"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validateFilePath(test.path, "")
			if test.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeInvalidPath))
		})
	}
}

func TestValidateFilePathInDir(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "srv", "library")
	tests := []struct {
		name  string
		path  string
		valid bool
	}{
		{name: "in directory", path: filepath.Join(root, "trio.json"), valid: true},
		{name: "nested", path: filepath.Join(root, "glass", "trio.json"), valid: true},
		{name: "traversal", path: root + "/../trio.json"},
		{name: "sibling prefix", path: root + "x/trio.json"},
		{name: "temp directory", path: filepath.Join(os.TempDir(), "trio.json")},
		{name: "scenes directory elsewhere", path: "scenes/trio.json"},
		{name: "wrong extension", path: filepath.Join(root, "trio.txt")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validateFilePath(test.path, root)
			if test.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeInvalidPath))
		})
	}
}

func TestLoadSceneFileIn(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "library")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "trio.json")
	require.NoError(t, os.WriteFile(path, []byte(validScene), 0o644))

	s, err := LoadSceneFileIn(dir, path)
	require.NoError(t, err)
	require.Len(t, s.Spheres, 3)

	_, err = LoadSceneFileIn(filepath.Join(t.TempDir(), "other"), path)
	require.True(t, errors.IsType(err, ErrTypeInvalidPath))

	_, err = LoadSceneFileIn("", path)
	require.True(t, errors.IsType(err, ErrTypeInvalidPath))
}
