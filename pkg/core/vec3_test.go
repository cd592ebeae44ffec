package core

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"clamp", NewVec3(-1, 0.5, 2).Clamp(0, 0.999), NewVec3(0, 0.5, 0.999)},
		{"sqrt", NewVec3(0.25, 1, 0).Sqrt(), NewVec3(0.5, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, tt.got, approx); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(2, 3, 6)
	if got := v.Dot(NewVec3(1, 0, -1)); got != -4 {
		t.Errorf("Expected dot -4, got %f", got)
	}
	if got := v.LengthSquared(); got != 49 {
		t.Errorf("Expected squared length 49, got %f", got)
	}
	if got := v.Length(); got != 7 {
		t.Errorf("Expected length 7, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	unit := NewVec3(3, 0, 4).Normalize()
	if math.Abs(unit.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", unit.Length())
	}
	if diff := cmp.Diff(NewVec3(0.6, 0, 0.8), unit, approx); diff != "" {
		t.Errorf("unexpected direction (-want +got):\n%s", diff)
	}

	// The zero vector must not turn into NaN
	zero := Vec3{}.Normalize()
	if !zero.IsFinite() || zero != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component at epsilon", NewVec3(1e-8, 0, 0), false},
		{"unit", NewVec3(0, 1, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN component to be reported")
	}
	if NewVec3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("Expected infinite component to be reported")
	}
}

func TestReflect(t *testing.T) {
	n := NewVec3(0, 1, 0)
	got := Reflect(NewVec3(1, -1, 0), n)
	if diff := cmp.Diff(NewVec3(1, 1, 0), got, approx); diff != "" {
		t.Errorf("unexpected reflection (-want +got):\n%s", diff)
	}

	// Reflection preserves length
	v := NewVec3(0.3, -0.7, 0.2)
	if math.Abs(Reflect(v, n).Length()-v.Length()) > 1e-12 {
		t.Error("Reflection changed vector length")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))

	tests := []struct {
		t        float64
		expected Vec3
	}{
		{0, NewVec3(1, 1, 1)},
		{0.5, NewVec3(1, 1, 0)},
		{-1, NewVec3(1, 1, 3)},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, ray.At(tt.t), approx); diff != "" {
			t.Errorf("At(%f) (-want +got):\n%s", tt.t, diff)
		}
	}
}
