package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestCamera(t *testing.T) *Camera {
	t.Helper()
	camera, err := NewCamera(DefaultCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return camera
}

func TestCamera_GetRay(t *testing.T) {
	camera := newTestCamera(t)
	halfWidth := 16.0 / 9.0

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-halfWidth, -1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"upper right", 1, 1, core.NewVec3(halfWidth, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-halfWidth, 1, -1)},
	}

	approx := cmpopts.EquateApprox(0, 1e-12)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if diff := cmp.Diff(core.Vec3{}, ray.Origin); diff != "" {
				t.Errorf("origin mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.expected, ray.Direction, approx); diff != "" {
				t.Errorf("direction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewCameraForImage(t *testing.T) {
	camera, err := NewCameraForImage(200, 100)
	if err != nil {
		t.Fatalf("NewCameraForImage: %v", err)
	}
	// Viewport is two units tall, so a 2:1 image spans four units across
	ray := camera.GetRay(1, 0.5)
	if math.Abs(ray.Direction.X-2) > 1e-12 {
		t.Errorf("Expected right edge at x=2, got %v", ray.Direction)
	}

	if _, err := NewCameraForImage(0, 100); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
}

func TestCamera_PixelRayOrientation(t *testing.T) {
	camera := newTestCamera(t)

	// Row 0 is the top of the image, so its rays point upward
	top := camera.PixelRay(4, 0, 9, 5)
	bottom := camera.PixelRay(4, 4, 9, 5)
	if !(top.Direction.Y > 0 && bottom.Direction.Y < top.Direction.Y) {
		t.Errorf("Expected top row above bottom row, got top %v bottom %v", top.Direction, bottom.Direction)
	}
}

func TestNewCamera_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero aspect ratio", func(c *CameraConfig) { c.AspectRatio = 0 }},
		{"negative viewport height", func(c *CameraConfig) { c.ViewportHeight = -2 }},
		{"NaN focal length", func(c *CameraConfig) { c.FocalLength = math.NaN() }},
		{"infinite aspect ratio", func(c *CameraConfig) { c.AspectRatio = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			tt.modify(&config)
			if _, err := NewCamera(config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
