package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken in this call
	AverageSamples   float64       // Average accumulated samples per pixel
	DiscardedSamples int           // Non-finite samples replaced by black
	Duration         time.Duration // Wall time of the render call
}

// merge adds the counters of a tile into the frame totals
func (rs *RenderStats) merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.DiscardedSamples += other.DiscardedSamples
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics.
// A non-finite sample is counted as black and reported as discarded.
func (ps *PixelStats) AddSample(color core.Vec3) (discarded bool) {
	ps.SampleCount++
	if !color.IsFinite() {
		return true
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	return false
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
