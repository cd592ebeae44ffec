package integrator

import "github.com/df07/go-pathtracer/pkg/core"

// Background is a vertical sky gradient, the only light source in a scene
type Background struct {
	Horizon core.Vec3 // Color for rays pointing straight down
	Zenith  core.Vec3 // Color for rays pointing straight up
}

// DefaultBackground returns a white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the gradient color seen along direction
func (b Background) Color(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*horizon + t*zenith
	return b.Horizon.Multiply(1.0 - t).Add(b.Zenith.Multiply(t))
}
