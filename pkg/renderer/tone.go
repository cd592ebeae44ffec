package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// BytesPerPixel is the size of one RGBA pixel in a frame buffer
const BytesPerPixel = 4

// maxLinearIntensity keeps 256*sqrt(c) strictly below 256
const maxLinearIntensity = 0.999

// ToneMap converts an averaged linear color into 8-bit RGBA.
// Channels are clamped to [0, 0.999], gamma corrected with sqrt and scaled by 256.
func ToneMap(colorVec core.Vec3) [BytesPerPixel]byte {
	if !colorVec.IsFinite() {
		colorVec = core.Vec3{}
	}
	colorVec = colorVec.Clamp(0.0, maxLinearIntensity).Sqrt()

	return [BytesPerPixel]byte{
		uint8(256 * colorVec.X),
		uint8(256 * colorVec.Y),
		uint8(256 * colorVec.Z),
		255,
	}
}

// bufferOffset returns the byte offset of pixel (x, row) in a row-major,
// top-to-bottom RGBA buffer of the given width
func bufferOffset(x, row, width int) int {
	return (row*width + x) * BytesPerPixel
}
