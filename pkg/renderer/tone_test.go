package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected [4]byte
	}{
		{"black", core.NewVec3(0, 0, 0), [4]byte{0, 0, 0, 255}},
		{"quarter intensity", core.NewVec3(0.25, 0.25, 0.25), [4]byte{128, 128, 128, 255}},
		{"white clamps below 256", core.NewVec3(1, 1, 1), [4]byte{255, 255, 255, 255}},
		{"overexposed", core.NewVec3(10, 2, 1.5), [4]byte{255, 255, 255, 255}},
		{"negative clamps to zero", core.NewVec3(-1, 0.25, -0.5), [4]byte{0, 128, 0, 255}},
		{"NaN is black", core.NewVec3(math.NaN(), 0.5, 0.5), [4]byte{0, 0, 0, 255}},
		{"infinity is black", core.NewVec3(math.Inf(1), 0, 0), [4]byte{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneMap(tt.color); got != tt.expected {
				t.Errorf("ToneMap(%v) = %v, expected %v", tt.color, got, tt.expected)
			}
		})
	}
}

func TestBufferOffset(t *testing.T) {
	if got := bufferOffset(0, 0, 10); got != 0 {
		t.Errorf("Expected offset 0, got %d", got)
	}
	if got := bufferOffset(3, 2, 10); got != (2*10+3)*4 {
		t.Errorf("Expected offset %d, got %d", (2*10+3)*4, got)
	}
}
