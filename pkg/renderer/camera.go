package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains the viewport parameters of the fixed pinhole camera
type CameraConfig struct {
	AspectRatio    float64 // Viewport width / height
	ViewportHeight float64 // Viewport height in world units
	FocalLength    float64 // Distance from the eye to the viewport
}

// DefaultCameraConfig returns a 16:9 viewport two units tall, one unit in front of the eye
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// Camera generates rays from an eye at the origin looking down -z
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from the given viewport configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	params := []struct {
		name  string
		value float64
	}{
		{"aspect ratio", config.AspectRatio},
		{"viewport height", config.ViewportHeight},
		{"focal length", config.FocalLength},
	}
	for _, p := range params {
		if !(p.value > 0) || math.IsInf(p.value, 1) {
			return nil, fmt.Errorf("%w: camera %s %g must be positive and finite", ErrInvalidConfig, p.name, p.value)
		}
	}

	viewportWidth := config.AspectRatio * config.ViewportHeight

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}, nil
}

// NewCameraForImage creates a default camera whose viewport matches the image aspect ratio
func NewCameraForImage(width, height int) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	config := DefaultCameraConfig()
	config.AspectRatio = float64(width) / float64(height)
	return NewCamera(config)
}

// PixelRay returns the ray through the center of pixel (x, row) of a
// width x height buffer, where row 0 is the top of the image
func (c *Camera) PixelRay(x, row, width, height int) core.Ray {
	y := height - 1 - row
	u := (float64(x) + 0.5) / float64(max(width-1, 1))
	v := (float64(y) + 0.5) / float64(max(height-1, 1))
	return c.GetRay(u, v)
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1.
// (0, 0) is the lower left corner of the viewport.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}
