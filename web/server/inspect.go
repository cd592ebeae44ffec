package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType"`
	GeometryType string         `json:"geometryType"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties"`
}

// InspectResult contains information about the primitive hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Primitive *geometry.Primitive // Nil when the ray hits nothing
}

// extractMaterialInfo describes a material variant and its parameters
func extractMaterialInfo(mat material.Material) (string, map[string]any) {
	properties := make(map[string]any)

	switch mat.Kind {
	case material.KindLambertian, material.KindMetal:
		properties["albedo"] = [3]float64{mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z}
		properties["color"] = fmt.Sprintf("#%02x%02x%02x",
			int(mat.Albedo.X*255), int(mat.Albedo.Y*255), int(mat.Albedo.Z*255))
		if mat.Kind == material.KindMetal {
			properties["fuzziness"] = mat.Fuzziness
		}
	}
	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a primitive variant and its parameters
func extractGeometryInfo(p *geometry.Primitive) (string, map[string]any) {
	properties := make(map[string]any)
	if p == nil {
		return "unknown", properties
	}

	switch p.Kind {
	case geometry.KindSphere:
		properties["center"] = [3]float64{p.Sphere.Center.X, p.Sphere.Center.Y, p.Sphere.Center.Z}
		properties["radius"] = p.Sphere.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of the given pixel and returns the first primitive hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, width, height, pixelX, pixelY int) InspectResult {
	ray := camera.PixelRay(pixelX, pixelY, width, height)

	hit, isHit := sceneObj.Hit(ray, integrator.ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The scene returns only the hit record, so find the primitive that produced it
	for i := range sceneObj.Primitives {
		p := &sceneObj.Primitives[i]
		if primHit, ok := p.Hit(ray, integrator.ShadowAcneEpsilon, hit.T); ok && primHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Primitive: p}
		}
	}
	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests. Pixel y counts rows from the top.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := scene.CreateScene(inspectReq.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera, err := renderer.NewCameraForImage(inspectReq.Width, inspectReq.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, camera, inspectReq.Width, inspectReq.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Primitive)

	rec := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{rec.Point.X, rec.Point.Y, rec.Point.Z},
		Normal:       [3]float64{rec.Normal.X, rec.Normal.Y, rec.Normal.Z},
		Distance:     rec.T,
		FrontFace:    rec.FrontFace,
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
