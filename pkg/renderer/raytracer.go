package renderer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var (
	// ErrInvalidConfig is returned for out-of-range sampling or camera parameters
	ErrInvalidConfig = errors.New("invalid render configuration")
	// ErrInvalidDimensions is returned for a non-positive image width or height
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	// ErrBufferSize is returned when the frame buffer is not width*height*4 bytes
	ErrBufferSize = errors.New("frame buffer size mismatch")
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int    // Number of rays per pixel
	MaxDepth        int    // Maximum ray bounce depth
	NumWorkers      int    // Number of parallel workers (0 = use CPU count)
	TileSize        int    // Edge length of the square tiles handed to workers
	Seed            uint64 // Base seed mixed into every pixel's random stream
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        100,
		NumWorkers:      0,
		TileSize:        32,
		Seed:            0,
	}
}

// Validate rejects configurations that cannot produce an image
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	}
	return nil
}

// validateDimensions rejects non-positive sizes and sizes whose buffer length overflows int
func validateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt/BytesPerPixel/height {
		return fmt.Errorf("%w: %dx%d is too large", ErrInvalidDimensions, width, height)
	}
	return nil
}

// ValidateBuffer checks that buffer can hold a width x height RGBA image
func ValidateBuffer(buffer []byte, width, height int) error {
	if err := validateDimensions(width, height); err != nil {
		return err
	}
	if expected := width * height * BytesPerPixel; len(buffer) != expected {
		return fmt.Errorf("%w: got %d bytes, expected %d for %dx%d", ErrBufferSize, len(buffer), expected, width, height)
	}
	return nil
}

// Raytracer renders a scene through a camera into RGBA frame buffers
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	width      int
	height     int
	config     SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using the sky-lit path tracing integrator
func NewRaytracer(s *scene.Scene, camera *Camera, width, height int, config SamplingConfig) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: scene is nil", ErrInvalidConfig)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is nil", ErrInvalidConfig)
	}
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		scene:      s,
		camera:     camera,
		width:      width,
		height:     height,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(integrator.DefaultBackground()),
		logger:     core.NopLogger(),
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetLogger sets the logger used for frame timing output
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Render fills buffer with one frame of SamplesPerPixel samples per pixel
func (rt *Raytracer) Render(buffer []byte) (RenderStats, error) {
	if err := ValidateBuffer(buffer, rt.width, rt.height); err != nil {
		return RenderStats{}, err
	}

	pixelStats := make([]PixelStats, rt.width*rt.height)
	stats := rt.renderFrame(buffer, pixelStats, core.FrameSeed(rt.config.Seed, 0))

	rt.logger.Printf("Frame rendered in %v (%dx%d, %d samples/pixel)\n",
		stats.Duration, rt.width, rt.height, rt.config.SamplesPerPixel)
	return stats, nil
}

// renderFrame adds one round of samples to pixelStats through the worker pool
// and writes the resulting averages into buffer
func (rt *Raytracer) renderFrame(buffer []byte, pixelStats []PixelStats, frameSeed uint64) RenderStats {
	startTime := time.Now()

	tileRenderer := NewTileRenderer(rt.scene, rt.camera, rt.integrator, rt.width, rt.height, rt.config)
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)

	pool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers)
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:       tile,
			TaskID:     i,
			FrameSeed:  frameSeed,
			Buffer:     buffer,
			PixelStats: pixelStats,
		})
	}

	var stats RenderStats
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	pool.Stop()

	accumulated := 0
	for i := range pixelStats {
		accumulated += pixelStats[i].SampleCount
	}
	stats.AverageSamples = float64(accumulated) / float64(len(pixelStats))
	stats.Duration = time.Since(startTime)
	return stats
}

// Render is the single-frame entry point: it renders s through camera into
// buffer, which must hold width*height RGBA pixels in row-major, top-to-bottom order
func Render(buffer []byte, width, height int, s *scene.Scene, camera *Camera, config SamplingConfig) (RenderStats, error) {
	if err := ValidateBuffer(buffer, width, height); err != nil {
		return RenderStats{}, err
	}
	rt, err := NewRaytracer(s, camera, width, height, config)
	if err != nil {
		return RenderStats{}, err
	}
	return rt.Render(buffer)
}
