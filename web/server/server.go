package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// maxRenderSamples caps width*height*samples for one synchronous render request
const maxRenderSamples = 64_000_000

// Uploader publishes encoded images under a key
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) error
}

// Server renders built-in scenes to PNG over HTTP
type Server struct {
	port     int
	uploader Uploader // Optional; nil disables upload requests
}

// NewServer creates a new web server. uploader may be nil.
func NewServer(port int, uploader Uploader) *Server {
	return &Server{port: port, uploader: uploader}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string `json:"scene"`     // Built-in scene ID
	Width     int    `json:"width"`     // Image width
	Height    int    `json:"height"`    // Image height
	Samples   int    `json:"samples"`   // Samples per pixel
	MaxDepth  int    `json:"maxDepth"`  // Maximum bounce depth
	Seed      int    `json:"seed"`      // Base random seed
	Thumbnail int    `json:"thumbnail"` // Maximum output width, 0 for full size
	Upload    bool   `json:"upload"`    // Store the result instead of returning it
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	DiscardedSamples int     `json:"discardedSamples"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

// UploadResponse is returned when a render is stored instead of streamed back
type UploadResponse struct {
	Key   string `json:"key"`
	Bytes int    `json:"bytes"`
	Stats Stats  `json:"stats"`
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleRender renders one frame and returns it as PNG, or uploads it when requested
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if req.Upload && s.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "Upload is not configured")
		return
	}

	sceneObj, err := scene.CreateScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera, err := renderer.NewCameraForImage(req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.DefaultSamplingConfig()
	config.SamplesPerPixel = req.Samples
	config.MaxDepth = req.MaxDepth
	config.Seed = uint64(req.Seed)

	// The client may have gone away while the request was queued
	if err := r.Context().Err(); err != nil {
		log.Printf("Render cancelled before start: %v", err)
		return
	}

	startTime := time.Now()
	buffer := make([]byte, req.Width*req.Height*renderer.BytesPerPixel)
	renderStats, err := renderer.Render(buffer, req.Width, req.Height, sceneObj, camera, config)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, renderer.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Sprintf("Render error: %v", err))
		return
	}
	stats := Stats{
		TotalPixels:      renderStats.TotalPixels,
		TotalSamples:     int64(renderStats.TotalSamples),
		AverageSamples:   renderStats.AverageSamples,
		DiscardedSamples: renderStats.DiscardedSamples,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
	}

	img, err := output.ImageFromBuffer(buffer, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	data, err := output.EncodeImage(output.Thumbnail(img, uint(req.Thumbnail)))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Upload {
		key := fmt.Sprintf("%s/render_%dx%d_%dspp_seed%d.png", req.Scene, req.Width, req.Height, req.Samples, req.Seed)
		if err := s.uploader.Upload(r.Context(), key, data); err != nil {
			log.Printf("Render upload failed: %v", err)
			writeError(w, http.StatusBadGateway, "Upload failed")
			return
		}
		writeJSON(w, http.StatusOK, UploadResponse{Key: key, Bytes: len(data), Stats: stats})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Samples", strconv.FormatFloat(stats.AverageSamples, 'f', -1, 64))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// parseCommonSceneParams parses the scene and image size shared by render and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	} else {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 1, 2000); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Samples, err = parseIntParam(query, "samples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 100, 1, 1000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseIntParam(query, "seed", 0, 0, 1<<31-1); err != nil {
		return nil, err
	}
	if req.Thumbnail, err = parseIntParam(query, "thumbnail", 0, 0, 2000); err != nil {
		return nil, err
	}
	if value := query.Get("upload"); value != "" {
		if req.Upload, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid upload: %s", value)
		}
	}

	if total := req.Width * req.Height * req.Samples; total > maxRenderSamples {
		return nil, fmt.Errorf("width*height*samples must be at most %d, got: %d", maxRenderSamples, total)
	}
	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
