package material

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidMaterial is returned when a material is constructed with out-of-range parameters
var ErrInvalidMaterial = errors.New("invalid material")

// Kind identifies a material variant
type Kind uint8

const (
	// KindLambertian is an ideal diffuse reflector
	KindLambertian Kind = iota + 1
	// KindMetal is a specular reflector with optional roughness
	KindMetal
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	default:
		return "unknown"
	}
}

// Material is a closed set of surface scattering models.
// It is a small value type and is copied into every hit record.
type Material struct {
	Kind      Kind
	Albedo    core.Vec3 // Per-channel reflectance
	Fuzziness float64   // Metal only: 0.0 = perfect mirror, 1.0 = very fuzzy
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// Scatter samples an outgoing ray for rayIn arriving at hit.
// It returns false when the material absorbs the ray.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the ray
	T         float64   // Parameter t along the ray
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

func validAlbedo(albedo core.Vec3) bool {
	return albedo.IsFinite() && albedo.X >= 0 && albedo.Y >= 0 && albedo.Z >= 0
}
