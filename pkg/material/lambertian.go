package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) (Material, error) {
	if !validAlbedo(albedo) {
		return Material{}, fmt.Errorf("%w: lambertian albedo %v must be finite and non-negative", ErrInvalidMaterial, albedo)
	}
	return Material{Kind: KindLambertian, Albedo: albedo}, nil
}

// scatterLambertian bounces the ray off the surface in a random direction around the normal
func (m Material) scatterLambertian(hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomBoxDirection(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: m.Albedo,
	}, true
}
