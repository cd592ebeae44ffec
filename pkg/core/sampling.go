package core

import (
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get3D() Vec3
}

// RandomSampler wraps a PCG generator that can be reseeded without allocating.
// A RandomSampler must not be shared between goroutines.
type RandomSampler struct {
	source *rand.PCG
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded with the given pair
func NewRandomSampler(seed1, seed2 uint64) *RandomSampler {
	source := rand.NewPCG(seed1, seed2)
	return &RandomSampler{source: source, random: rand.New(source)}
}

// Reseed restarts the stream from the given seed pair
func (r *RandomSampler) Reseed(seed1, seed2 uint64) {
	r.source.Seed(seed1, seed2)
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// PixelSeed derives a seed pair for a pixel of a given frame.
// The same (x, y, frame) always yields the same stream, whichever worker renders it.
func PixelSeed(x, y int, frame uint64) (uint64, uint64) {
	return splitMix64(uint64(uint32(x))<<32 | uint64(uint32(y))), splitMix64(frame ^ 0x9e3779b97f4a7c15)
}

// FrameSeed combines a base seed with a progressive frame index. The base seed is
// scrambled first, so frame f of seed s does not replay frame f+1 of seed s-1.
func FrameSeed(seed, frame uint64) uint64 {
	return splitMix64(seed) ^ frame
}

// splitMix64 scrambles v so that neighbouring pixels get unrelated streams
func splitMix64(v uint64) uint64 {
	v += 0x9e3779b97f4a7c15
	v = (v ^ (v >> 30)) * 0xbf58476d1ce4e5b9
	v = (v ^ (v >> 27)) * 0x94d049bb133111eb
	return v ^ (v >> 31)
}

// RandomInBox returns a vector with each component uniform in [minVal, maxVal)
func RandomInBox(sampler Sampler, minVal, maxVal float64) Vec3 {
	s := sampler.Get3D()
	span := maxVal - minVal
	return NewVec3(minVal+span*s.X, minVal+span*s.Y, minVal+span*s.Z)
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection sampling
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1)³ cube
		p := RandomInBox(sampler, -1, 1)
		// Accept if inside unit sphere
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomBoxDirection returns a normalized vector whose components were drawn uniformly in [0,1).
// The result is confined to the positive octant and is not uniform on the sphere.
func RandomBoxDirection(sampler Sampler) Vec3 {
	return RandomInBox(sampler, 0, 1).Normalize()
}
