package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-column-raytracer/pkg/framebuffer"
	"github.com/df07/go-column-raytracer/pkg/renderer"
	"github.com/df07/go-column-raytracer/pkg/scene"
)

// consoleBufferSize bounds the number of undelivered console messages
const consoleBufferSize = 256

// Parameter limits for render requests
const (
	minDimension  = 1
	maxDimension  = 2000
	maxSamples    = 1000
	maxWorkers    = 256
	defaultWidth  = 400
	defaultHeight = 400
)

// Server handles web requests for the column raytracer
type Server struct {
	port    int
	out     io.Writer
	console chan ConsoleMessage
	renders atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return newServer(port, os.Stdout)
}

func newServer(port int, out io.Writer) *Server {
	return &Server{
		port:    port,
		out:     out,
		console: make(chan ConsoleMessage, consoleBufferSize),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width   int                // Image width
	Height  int                // Image height
	Samples int                // Samples per pixel
	Workers int                // Number of column workers
	Format  framebuffer.Format // Output encoding
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/console", s.handleConsole)
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

// handleRender renders the default scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewRenderLogger(renderID, s.out, s.console)

	sizeX, sizeY := scene.ViewPlaneSize()
	viewPlane := renderer.NewViewPlane(req.Width, req.Height, sizeX, sizeY, scene.ViewPlaneDistance)
	config := renderer.DispatchConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		NumWorkers:      req.Workers,
	}

	// The request context is cancelled when the client disconnects
	dispatcher := renderer.NewDispatcher(scene.NewDefaultScene(), viewPlane, config, logger)
	grid, stats, err := dispatcher.Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Printf("Client disconnected, render abandoned\n")
			return
		}
		writeJSON(w, renderErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := grid.Encode(&buf, req.Format); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Seconds", strconv.FormatFloat(stats.Seconds(), 'f', 6, 64))
	w.Header().Set("X-Render-Workers", strconv.Itoa(stats.SpawnedWorkers))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Printf("Failed to write response: %v\n", err)
	}
}

// renderErrorStatus maps a render error to an HTTP status code
func renderErrorStatus(err error) int {
	var configErr *renderer.ConfigurationError
	if errors.As(err, &configErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	var err error
	if req.Width, err = parseIntParam(query, "width", defaultWidth, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaultHeight, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 1, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 1, 1, maxWorkers); err != nil {
		return nil, err
	}

	req.Format = framebuffer.FormatPNG
	if format := query.Get("format"); format != "" {
		if req.Format, err = framebuffer.ParseFormat(format); err != nil {
			return nil, err
		}
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

// handleConfig returns the default render parameters and their limits
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	defaults := renderer.DefaultDispatchConfig()
	response := map[string]interface{}{
		"defaults": map[string]interface{}{
			"width":   defaultWidth,
			"height":  defaultHeight,
			"samples": defaults.SamplesPerPixel,
			"workers": defaults.NumWorkers,
			"format":  string(framebuffer.FormatPNG),
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minDimension, "max": maxDimension},
			"height":  map[string]int{"min": minDimension, "max": maxDimension},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"workers": map[string]int{"min": 1, "max": maxWorkers},
		},
		"formats": []string{
			string(framebuffer.FormatPNG),
			string(framebuffer.FormatJPEG),
			string(framebuffer.FormatBMP),
			string(framebuffer.FormatTIFF),
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// handleConsole drains the console messages logged since the last call
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	messages := []ConsoleMessage{}
drain:
	for {
		select {
		case msg := <-s.console:
			messages = append(messages, msg)
		default:
			break drain
		}
	}
	writeJSON(w, http.StatusOK, messages)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
