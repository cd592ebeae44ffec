// Package output encodes rendered frame buffers and publishes them.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// ErrBufferSize is returned when a frame buffer does not hold width*height RGBA pixels
var ErrBufferSize = errors.New("frame buffer size mismatch")

// ImageFromBuffer wraps a row-major, top-to-bottom RGBA frame buffer as an image
// without copying it
func ImageFromBuffer(buffer []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/4/height || len(buffer) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrBufferSize, len(buffer), width, height)
	}
	return &image.RGBA{
		Pix:    buffer,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// EncodePNG writes the frame buffer to w as a PNG
func EncodePNG(w io.Writer, buffer []byte, width, height int) error {
	img, err := ImageFromBuffer(buffer, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// EncodeImage encodes any image as PNG bytes
func EncodeImage(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile saves PNG data to path, creating parent directories as needed
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Thumbnail downscales img so its width is at most maxWidth, keeping the aspect ratio.
// Images already narrower than maxWidth are returned unchanged.
func Thumbnail(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return img
	}
	// A zero height lets resize preserve the aspect ratio
	return resize.Resize(maxWidth, 0, img, resize.Bilinear)
}
