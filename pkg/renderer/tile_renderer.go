package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Tile represents a rectangular region of the frame buffer to be rendered.
// Bounds are in buffer coordinates: row 0 is the top of the image.
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	var tiles []Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds no mutable state and may be shared by all workers.
type TileRenderer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	width      int
	height     int
	config     SamplingConfig
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, camera *Camera, integratorInst integrator.Integrator, width, height int, config SamplingConfig) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
		config:     config,
	}
}

// RenderTileBounds adds SamplesPerPixel samples to every pixel within bounds
// and writes the tone-mapped averages into buffer
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, buffer []byte, pixelStats []PixelStats, sampler *core.RandomSampler, frameSeed uint64) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[row*tr.width+x]
			stats.DiscardedSamples += tr.samplePixel(x, tr.height-1-row, ps, sampler, frameSeed)
			stats.TotalSamples += tr.config.SamplesPerPixel

			pixel := ToneMap(ps.GetColor())
			offset := bufferOffset(x, row, tr.width)
			copy(buffer[offset:offset+BytesPerPixel], pixel[:])
		}
	}

	return stats
}

// samplePixel traces SamplesPerPixel jittered rays through pixel (x, y), where
// y counts rows from the bottom of the image. It returns the number of discarded samples.
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler *core.RandomSampler, frameSeed uint64) int {
	sampler.Reseed(core.PixelSeed(x, y, frameSeed))

	// A single column or row maps to u or v in [0, 1) instead of dividing by zero
	uScale := 1.0 / float64(max(tr.width-1, 1))
	vScale := 1.0 / float64(max(tr.height-1, 1))

	discarded := 0
	for s := 0; s < tr.config.SamplesPerPixel; s++ {
		u := (float64(x) + sampler.Get1D()) * uScale
		v := (float64(y) + sampler.Get1D()) * vScale

		ray := tr.camera.GetRay(u, v)
		color := tr.integrator.RayColor(ray, tr.scene, sampler, tr.config.MaxDepth)
		if ps.AddSample(color) {
			discarded++
		}
	}
	return discarded
}
