package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of colored metal spheres on a diffuse ground sphere.
// The grid stretches away from the fixed camera along -z.
func NewSphereGridScene() (*Scene, error) {
	const (
		columns      = 7
		rows         = 4
		sphereRadius = 0.2
		groundY      = -0.5
	)
	b := newBuilder()

	b.sphere(core.NewVec3(0, groundY-100, -1), 100, b.lambertian(core.NewVec3(0.5, 0.5, 0.5)))

	spacing := 0.55
	for i := 0; i < columns; i++ {
		for j := 0; j < rows; j++ {
			x := (float64(i) - float64(columns-1)/2) * spacing
			z := -1.2 - float64(j)*spacing
			position := core.NewVec3(x, groundY+sphereRadius, z)

			// Vary hue across X and chroma with distance
			hue := float64(i) / float64(columns-1) * 360.0
			chroma := 0.05 + float64(j)/float64(rows-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			b.sphere(position, sphereRadius, b.metal(oklchToRGB(lightness, chroma, hue), roughness))
		}
	}

	return b.build()
}
