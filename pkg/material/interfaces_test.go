package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name           string
		direction      core.Vec3
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"ray from outside", core.NewVec3(0, 0, -1), true, outward},
		{"ray from inside", core.NewVec3(0, 0, 1), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ray := core.NewRay(core.Vec3{}, tt.direction)
			hit.SetFaceNormal(ray, outward)

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if ray.Direction.Dot(hit.Normal) >= 0 {
				t.Error("Normal should oppose the incoming ray")
			}
		})
	}
}

func TestMaterial_UnknownKindAbsorbs(t *testing.T) {
	var m Material
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0)}
	if _, ok := m.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), hit, core.NewRandomSampler(1, 1)); ok {
		t.Error("Zero-value material should absorb")
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindLambertian: "lambertian",
		KindMetal:      "metal",
		Kind(0):        "unknown",
	}
	for kind, expected := range tests {
		if got := kind.String(); got != expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", kind, got, expected)
		}
	}
}
