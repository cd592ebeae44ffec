package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. The radius must be positive and finite.
func NewSphere(center core.Vec3, radius float64, mat material.Material) (Sphere, error) {
	if !center.IsFinite() {
		return Sphere{}, fmt.Errorf("%w: center %v is not finite", ErrInvalidShape, center)
	}
	if !(radius > 0) || math.IsInf(radius, 1) {
		return Sphere{}, fmt.Errorf("%w: sphere radius %g must be positive and finite", ErrInvalidShape, radius)
	}
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// Hit tests if a ray intersects with the sphere
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		// A zero direction never leaves its origin
		return material.HitRecord{}, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c

	// No intersection if discriminant is negative (or NaN)
	if !(discriminant >= 0) {
		return material.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inRange(root, tMin, tMax) {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if !inRange(root, tMin, tMax) {
			// Both intersections are outside valid range
			return material.HitRecord{}, false
		}
	}

	hitRecord := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// inRange reports whether t lies in [tMin, tMax]; NaN never does
func inRange(t, tMin, tMax float64) bool {
	return t >= tMin && t <= tMax
}
