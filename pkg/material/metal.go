package material

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzziness float64) (Material, error) {
	if !validAlbedo(albedo) {
		return Material{}, fmt.Errorf("%w: metal albedo %v must be finite and non-negative", ErrInvalidMaterial, albedo)
	}
	if math.IsNaN(fuzziness) || fuzziness < 0 || fuzziness > 1 {
		return Material{}, fmt.Errorf("%w: metal fuzziness %g outside [0, 1]", ErrInvalidMaterial, fuzziness)
	}
	return Material{Kind: KindMetal, Albedo: albedo, Fuzziness: fuzziness}, nil
}

// scatterMetal reflects the ray about the normal, perturbed by the fuzziness
func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.Fuzziness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzziness))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// Only scatter if the ray is above the surface (not absorbed)
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
