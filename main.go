package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// config holds the command line settings
type config struct {
	sceneID    string
	width      int
	height     int
	samples    int
	maxDepth   int
	workers    int
	passes     int
	seed       uint64
	outputPath string // Empty picks output/<scene>/render_<timestamp>.png
	thumbnail  uint   // Thumbnail width, 0 disables
	upload     bool
	list       bool
}

func main() {
	// Optional; real environment variables take precedence
	_ = godotenv.Load()

	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if cfg.list {
		printScenes(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseConfig parses flags whose defaults come from RAYTRACER_* environment variables
func parseConfig(args []string, usage io.Writer) (config, error) {
	var cfg config
	env := envReader{}

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&cfg.sceneID, "scene", env.String("RAYTRACER_SCENE", "default"), "Built-in scene ID (see -list)")
	fs.IntVar(&cfg.width, "width", env.Int("RAYTRACER_WIDTH", 400), "Image width in pixels")
	fs.IntVar(&cfg.height, "height", env.Int("RAYTRACER_HEIGHT", 225), "Image height in pixels")
	fs.IntVar(&cfg.samples, "samples", env.Int("RAYTRACER_SAMPLES", 50), "Samples per pixel per pass")
	fs.IntVar(&cfg.maxDepth, "depth", env.Int("RAYTRACER_DEPTH", 100), "Maximum ray bounce depth")
	fs.IntVar(&cfg.workers, "workers", env.Int("RAYTRACER_WORKERS", 0), "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&cfg.passes, "passes", env.Int("RAYTRACER_PASSES", 1), "Progressive passes to accumulate")
	fs.Uint64Var(&cfg.seed, "seed", uint64(env.Int("RAYTRACER_SEED", 0)), "Base random seed")
	fs.StringVar(&cfg.outputPath, "output", env.String("RAYTRACER_OUTPUT", ""), "Output PNG path")
	fs.UintVar(&cfg.thumbnail, "thumbnail", uint(env.Int("RAYTRACER_THUMBNAIL", 0)), "Also write a thumbnail of this width (0 = none)")
	fs.BoolVar(&cfg.upload, "upload", false, "Upload the render to the S3 bucket configured by S3_* variables")
	fs.BoolVar(&cfg.list, "list", false, "List the built-in scenes and exit")

	if err := env.Err(); err != nil {
		return config{}, err
	}
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if cfg.passes < 1 {
		return config{}, fmt.Errorf("passes must be at least 1, got %d", cfg.passes)
	}
	return cfg, nil
}

// envReader reads typed environment variables, keeping the first parse error
type envReader struct {
	err error
}

func (e *envReader) String(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func (e *envReader) Int(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		if e.err == nil {
			e.err = fmt.Errorf("invalid %s: %q", key, value)
		}
		return fallback
	}
	return parsed
}

func (e *envReader) Err() error {
	return e.err
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneID string, now time.Time) string {
	return filepath.Join("output", sceneID, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// thumbnailPath derives the thumbnail file name from the render path
func thumbnailPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.png"
}

// run renders the configured scene and writes, and optionally uploads, the result
func run(ctx context.Context, cfg config, logger core.Logger) error {
	selectedScene, err := scene.CreateScene(cfg.sceneID)
	if err != nil {
		return err
	}
	camera, err := renderer.NewCameraForImage(cfg.width, cfg.height)
	if err != nil {
		return err
	}

	sampling := renderer.DefaultSamplingConfig()
	sampling.SamplesPerPixel = cfg.samples
	sampling.MaxDepth = cfg.maxDepth
	sampling.NumWorkers = cfg.workers
	sampling.Seed = cfg.seed

	logger.Printf("Rendering scene %q at %dx%d, %d samples/pixel x %d passes\n",
		cfg.sceneID, cfg.width, cfg.height, cfg.samples, cfg.passes)

	startTime := time.Now()
	buffer, err := render(ctx, selectedScene, camera, cfg, sampling, logger)
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))

	img, err := output.ImageFromBuffer(buffer, cfg.width, cfg.height)
	if err != nil {
		return err
	}
	data, err := output.EncodeImage(img)
	if err != nil {
		return err
	}

	path := cfg.outputPath
	if path == "" {
		path = createOutputPath(cfg.sceneID, time.Now())
	}
	if err := output.WriteFile(path, data); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", path)

	if cfg.thumbnail > 0 {
		thumbData, err := output.EncodeImage(output.Thumbnail(img, cfg.thumbnail))
		if err != nil {
			return err
		}
		if err := output.WriteFile(thumbnailPath(path), thumbData); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbnailPath(path))
	}

	if cfg.upload {
		uploader, err := output.NewS3Uploader(output.S3ConfigFromEnv(), logger)
		if err != nil {
			return err
		}
		key := cfg.sceneID + "/" + filepath.Base(path)
		if err := uploader.Upload(ctx, key, data); err != nil {
			return err
		}
	}
	return nil
}

// render produces the final frame buffer, accumulating passes when more than one is requested.
// An interrupted progressive render keeps the last completed pass.
func render(ctx context.Context, s *scene.Scene, camera *renderer.Camera, cfg config, sampling renderer.SamplingConfig, logger core.Logger) ([]byte, error) {
	if cfg.passes == 1 {
		buffer := make([]byte, cfg.width*cfg.height*renderer.BytesPerPixel)
		rt, err := renderer.NewRaytracer(s, camera, cfg.width, cfg.height, sampling)
		if err != nil {
			return nil, err
		}
		rt.SetLogger(logger)
		if _, err := rt.Render(buffer); err != nil {
			return nil, err
		}
		return buffer, nil
	}

	pr, err := renderer.NewProgressiveRenderer(s, camera, cfg.width, cfg.height, sampling)
	if err != nil {
		return nil, err
	}
	pr.SetLogger(logger)

	passChan, errChan := pr.RenderProgressive(ctx, cfg.passes)
	var last []byte
	for result := range passChan {
		last = result.Image.Pix
	}
	if err := <-errChan; err != nil {
		if last == nil || !errors.Is(err, context.Canceled) {
			return nil, err
		}
		logger.Printf("Interrupted, keeping %d completed passes\n", pr.Frames())
	}
	return last, nil
}
