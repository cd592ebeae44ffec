package output

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func testBuffer(width, height int) []byte {
	buffer := make([]byte, width*height*4)
	for i := 0; i < len(buffer); i += 4 {
		buffer[i] = byte(i / 4)
		buffer[i+1] = 100
		buffer[i+2] = 200
		buffer[i+3] = 255
	}
	return buffer
}

func TestImageFromBuffer(t *testing.T) {
	buffer := testBuffer(3, 2)
	img, err := ImageFromBuffer(buffer, 3, 2)
	if err != nil {
		t.Fatalf("ImageFromBuffer: %v", err)
	}

	// Row 1, column 2 is the sixth pixel in the buffer
	if got, expected := img.RGBAAt(2, 1), (color.RGBA{R: 5, G: 100, B: 200, A: 255}); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	if _, err := ImageFromBuffer(buffer[:len(buffer)-1], 3, 2); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Expected ErrBufferSize, got %v", err)
	}
	if _, err := ImageFromBuffer(nil, 0, 0); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Expected ErrBufferSize for empty image, got %v", err)
	}
	if _, err := ImageFromBuffer(nil, math.MaxInt/2, 3); !errors.Is(err, ErrBufferSize) {
		t.Errorf("Expected ErrBufferSize for overflowing size, got %v", err)
	}
}

func TestEncodePNG(t *testing.T) {
	buffer := testBuffer(4, 3)
	var out bytes.Buffer
	if err := EncodePNG(&out, buffer, 4, 3); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	decoded, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("Decoding: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("Unexpected bounds %v", b)
	}
	r, g, b, a := decoded.At(1, 2).RGBA()
	if r>>8 != 9 || g>>8 != 100 || b>>8 != 200 || a>>8 != 255 {
		t.Errorf("Unexpected pixel (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renders", "default", "frame.png")
	if err := WriteFile(path, []byte("data")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("Unexpected contents %q", data)
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))

	thumb := Thumbnail(img, 100)
	if b := thumb.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("Expected 100x50 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}

	if Thumbnail(img, 800) != image.Image(img) {
		t.Error("Narrow images should be returned unchanged")
	}
	if Thumbnail(img, 0) != image.Image(img) {
		t.Error("Zero width should disable resizing")
	}
}
