package server

import (
	"fmt"
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/geometry"
	"github.com/df07/go-simd-raytracer/pkg/material"
	"github.com/df07/go-simd-raytracer/pkg/renderer"
	"github.com/df07/go-simd-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType,omitempty"`
	GeometryType string         `json:"geometryType,omitempty"`
	SphereIndex  int            `json:"sphereIndex"`
	Point        [3]float32     `json:"point"`
	Normal       [3]float32     `json:"normal"`
	T            float32        `json:"t"`
	Distance     float32        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// InspectResult contains information about the sphere hit by an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord material.HitRecord
	Index     int
	Sphere    geometry.Sphere
}

// extractMaterialInfo describes a material for display
func extractMaterialInfo(mat material.Material) (string, map[string]any) {
	properties := make(map[string]any)
	properties["albedo"] = vecArray(mat.Albedo)
	properties["color"] = hexColor(mat.Albedo)

	if mat.Kind == material.Dielectric {
		properties["refractiveIndex"] = material.IOR
	}
	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a sphere for display
func extractGeometryInfo(sphere geometry.Sphere) (string, map[string]any) {
	return "sphere", map[string]any{
		"center": vecArray(sphere.Center),
		"radius": sphere.Radius,
	}
}

// inspectPixel casts a ray through the center of the pixel and returns the
// first sphere it hits
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, origin core.Vec3, row, col int) InspectResult {
	ray := camera.CenterRay(origin, row, col)

	hit, index, ok := geometry.FindNearestHitRay(sceneObj.Spheres, ray, geometry.Infinity)
	if !ok {
		return InspectResult{Hit: false, Ray: ray, Index: -1}
	}
	return InspectResult{
		Hit:       true,
		Ray:       ray,
		HitRecord: hit,
		Index:     index,
		Sphere:    sceneObj.Spheres[index],
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	config, err := s.frameConfig(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	col, err := parseIntParam(query, "px", -1, 0, config.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	row, err := parseIntParam(query, "py", -1, 0, config.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if col < 0 || row < 0 {
		writeError(w, http.StatusBadRequest, errors.New("pixel coordinates px and py are required").
			WithType(ErrTypeInvalidRequest))
		return
	}

	sceneObj, err := s.createScene(sceneParam(query))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	origin, err := parseOrigin(query, sceneObj.CameraOrigin)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := inspectPixel(sceneObj, renderer.NewCamera(config), origin, row, col)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, SphereIndex: -1})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Sphere)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		SphereIndex:  result.Index,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		T:            result.HitRecord.T,
		Distance:     result.HitRecord.T * result.Ray.Direction.Length(),
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

func vecArray(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// hexColor clamps each channel to [0, 1] before formatting
func hexColor(v core.Vec3) string {
	channel := func(c float32) int {
		switch {
		case c <= 0:
			return 0
		case c >= 1:
			return 255
		default:
			return int(c * 255)
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(v.X), channel(v.Y), channel(v.Z))
}
