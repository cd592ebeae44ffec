package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ShadowAcneEpsilon is the minimum hit distance, so a scattered ray does not
// re-hit the surface it just left
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing against a sky background
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		background: background,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing.
// The path ends black when it runs out of depth or is absorbed, and ends at the
// sky on a miss. Attenuations are applied from the sky back toward the camera,
// so the result is bit-identical to the recursive estimator.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	var stack [32]core.Vec3
	attenuations := stack[:0]

	for ; depth > 0; depth-- {
		hit, isHit := s.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			color := pt.background.Color(ray.Direction)
			for i := len(attenuations) - 1; i >= 0; i-- {
				color = attenuations[i].MultiplyVec(color)
			}
			return color
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{}
		}

		attenuations = append(attenuations, scatter.Attenuation)
		ray = scatter.Scattered
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return core.Vec3{}
}
