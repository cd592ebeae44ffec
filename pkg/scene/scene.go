package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene is an ordered collection of primitives.
// It must not be modified while a render is in progress.
type Scene struct {
	Primitives []geometry.Primitive
}

// New creates an empty scene
func New() *Scene {
	return &Scene{Primitives: make([]geometry.Primitive, 0)}
}

// Add appends a primitive to the scene
func (s *Scene) Add(p geometry.Primitive) {
	s.Primitives = append(s.Primitives, p)
}

// AddSphere validates and adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	p, err := geometry.NewSpherePrimitive(center, radius, mat)
	if err != nil {
		return err
	}
	s.Add(p)
	return nil
}

// Len returns the number of primitives in the scene
func (s *Scene) Len() int {
	return len(s.Primitives)
}

// Hit returns the nearest intersection along the ray within [tMin, tMax].
// Each primitive is tested against the closest hit found so far.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, p := range s.Primitives {
		if hit, isHit := p.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
