package renderer

import (
	"context"
	"image"
	"log"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing through the standard logger
type DefaultLogger struct {
	logger *log.Logger
}

func (dl *DefaultLogger) Printf(format string, args ...any) {
	dl.logger.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger writing to stderr
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{logger: log.New(os.Stderr, "[raytracer] ", log.LstdFlags)}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// ProgressiveRenderer accumulates samples across successive frames, so every
// call to RenderFrame refines the image produced by the previous calls
type ProgressiveRenderer struct {
	raytracer  *Raytracer
	pixelStats []PixelStats // Running per-pixel accumulators (buffer order)
	frame      uint64       // Number of frames accumulated since the last reset
}

// NewProgressiveRenderer creates a progressive renderer. Each frame adds
// config.SamplesPerPixel samples per pixel.
func NewProgressiveRenderer(s *scene.Scene, camera *Camera, width, height int, config SamplingConfig) (*ProgressiveRenderer, error) {
	rt, err := NewRaytracer(s, camera, width, height, config)
	if err != nil {
		return nil, err
	}
	return &ProgressiveRenderer{
		raytracer:  rt,
		pixelStats: make([]PixelStats, width*height),
	}, nil
}

// SetLogger sets the logger used for per-frame output
func (pr *ProgressiveRenderer) SetLogger(logger core.Logger) {
	pr.raytracer.SetLogger(logger)
}

// Frames returns the number of frames accumulated since the last reset
func (pr *ProgressiveRenderer) Frames() uint64 {
	return pr.frame
}

// Reset discards all accumulated samples
func (pr *ProgressiveRenderer) Reset() {
	clear(pr.pixelStats)
	pr.frame = 0
}

// RenderFrame adds one frame of samples and writes the running mean into buffer
func (pr *ProgressiveRenderer) RenderFrame(buffer []byte) (RenderStats, error) {
	rt := pr.raytracer
	if err := ValidateBuffer(buffer, rt.width, rt.height); err != nil {
		return RenderStats{}, err
	}

	// Each frame draws from its own streams so repeated frames add new information
	stats := rt.renderFrame(buffer, pr.pixelStats, core.FrameSeed(rt.config.Seed, pr.frame))
	pr.frame++

	rt.logger.Printf("Frame %d rendered in %v (%.0f samples/pixel accumulated)\n",
		pr.frame, stats.Duration, stats.AverageSamples)
	return stats, nil
}

// RenderProgressive renders up to passes frames with channel-based communication.
// The caller should drain both channels; the error channel receives ctx.Err()
// when rendering is cancelled between passes.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context, passes int) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		rt := pr.raytracer
		rt.logger.Printf("Starting progressive rendering with %d passes...\n", passes)

		for pass := 1; pass <= passes; pass++ {
			// Check if the caller gave up before starting this pass
			select {
			case <-ctx.Done():
				rt.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
			stats, err := pr.RenderFrame(img.Pix)
			if err != nil {
				errChan <- err
				return
			}

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     pass == passes,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}
