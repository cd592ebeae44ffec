package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Primitive is a closed set of shapes that can be hit by rays.
// Only the field matching Kind is meaningful.
type Primitive struct {
	Kind   PrimitiveKind
	Sphere Sphere
}

// NewSpherePrimitive validates a sphere and wraps it as a Primitive
func NewSpherePrimitive(center core.Vec3, radius float64, mat material.Material) (Primitive, error) {
	sphere, err := NewSphere(center, radius, mat)
	if err != nil {
		return Primitive{}, err
	}
	return sphere.Primitive(), nil
}

// Primitive wraps the sphere as a Primitive
func (s Sphere) Primitive() Primitive {
	return Primitive{Kind: KindSphere, Sphere: s}
}

// Hit dispatches the intersection test to the underlying shape
func (p Primitive) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Hit(ray, tMin, tMax)
	default:
		return material.HitRecord{}, false
	}
}
