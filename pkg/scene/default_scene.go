package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// builder assembles a scene and keeps the first construction error
type builder struct {
	scene *Scene
	err   error
}

func newBuilder() *builder {
	return &builder{scene: New()}
}

func (b *builder) lambertian(albedo core.Vec3) material.Material {
	m, err := material.NewLambertian(albedo)
	b.keep(err)
	return m
}

func (b *builder) metal(albedo core.Vec3, fuzziness float64) material.Material {
	m, err := material.NewMetal(albedo, fuzziness)
	b.keep(err)
	return m
}

func (b *builder) sphere(center core.Vec3, radius float64, mat material.Material) {
	b.keep(b.scene.AddSphere(center, radius, mat))
}

func (b *builder) keep(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) build() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.scene, nil
}

// NewDefaultScene creates the default scene: a diffuse sphere flanked by two
// metal spheres, resting on a large diffuse ground sphere
func NewDefaultScene() (*Scene, error) {
	b := newBuilder()

	center := b.lambertian(core.NewVec3(0.7, 0.3, 0.3))
	fuzzyGold := b.metal(core.NewVec3(0.8, 0.6, 0.2), 1.0)
	brushedSilver := b.metal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	ground := b.lambertian(core.NewVec3(0.8, 0.8, 0.0))

	b.sphere(core.NewVec3(0, 0, -1), 0.5, center)
	b.sphere(core.NewVec3(1, 0, -1), 0.5, fuzzyGold)
	b.sphere(core.NewVec3(-1, 0, -1), 0.5, brushedSilver)
	b.sphere(core.NewVec3(0, -100.5, -1), 100, ground)

	return b.build()
}

// NewSingleSphereScene creates a scene with one diffuse sphere in front of the camera
func NewSingleSphereScene() (*Scene, error) {
	b := newBuilder()
	b.sphere(core.NewVec3(0, 0, -1), 0.5, b.lambertian(core.NewVec3(0.7, 0.3, 0.3)))
	return b.build()
}
