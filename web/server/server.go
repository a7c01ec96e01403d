package server

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/df07/go-simd-raytracer/pkg/loaders"
	"github.com/df07/go-simd-raytracer/pkg/renderer"
	"github.com/df07/go-simd-raytracer/pkg/scene"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

const (
	// ErrTypeInvalidRequest marks request parameters the server rejects.
	ErrTypeInvalidRequest = "invalid_request"

	defaultScene = "default"
	minDimension = 8
	maxDimension = 2000
)

// Options configures a Server
type Options struct {
	ScenesDir  string // Directory scanned for JSON scene files
	StaticDir  string // Directory served at /, empty to disable
	MaxThreads int    // Upper bound on row workers per frame
}

// Server handles web requests for the raytracer. Frames are rendered one at
// a time; concurrent requests wait for the previous frame to finish.
type Server struct {
	options  Options
	renderMu sync.Mutex
}

// NewServer creates a new web server
func NewServer(opts Options) *Server {
	if opts.MaxThreads <= 0 {
		opts.MaxThreads = runtime.NumCPU()
	}
	return &Server{options: opts}
}

// Handler returns the public API handler, instrumented with request metrics
func (s *Server) Handler() http.Handler {
	var service http.ServeMux
	service.Handle("/api/frame", handleWithCORS(http.HandlerFunc(s.handleFrame)))
	service.Handle("/api/scene", handleWithCORS(http.HandlerFunc(s.handleScene)))
	service.Handle("/api/scenes", handleWithCORS(http.HandlerFunc(s.handleScenes)))
	service.Handle("/api/inspect", handleWithCORS(http.HandlerFunc(s.handleInspect)))
	service.Handle("/api/health", handleWithCORS(http.HandlerFunc(handleHealth)))
	if s.options.StaticDir != "" {
		service.Handle("/", http.FileServer(http.Dir(s.options.StaticDir)))
	}
	return metrics.HTTPHandler(&service, MetricsPathFormatter)
}

// AdminHandler returns the handler for the admin listener
func (s *Server) AdminHandler() http.Handler {
	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", handleHealth)
	return &admin
}

// ListenAndServe runs every server until ctx is done, then shuts them down
func ListenAndServe(ctx context.Context, servers ...*http.Server) {
	go func() {
		<-ctx.Done()

		for _, s := range servers {
			if err := s.Shutdown(context.Background()); err != nil {
				logs.Warn(errors.Newf("shutting down the server failed").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}
	}()

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)

		go func(s *http.Server) {
			defer wg.Done()

			logs.WithTag("addr", s.Addr).Info("starting server")

			switch err := s.ListenAndServe(); err {
			case nil, http.ErrServerClosed, context.Canceled:
				logs.WithTag("addr", s.Addr).Info("stopping server")

			default:
				logs.Warn(errors.Newf("server stopped").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}(s)
	}

	wg.Wait()
}

// MetricsPathFormatter returns empty string on HTTP 301, 400, 404 or 405 statusCode
func MetricsPathFormatter(statusCode int, path string) string {
	if statusCode == http.StatusMovedPermanently ||
		statusCode == http.StatusBadRequest ||
		statusCode == http.StatusNotFound ||
		statusCode == http.StatusMethodNotAllowed {
		return ""
	}

	return path
}

func handleWithCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed").
				WithType(ErrTypeInvalidRequest).
				WithTag("method", r.Method))
			return
		}
		h.ServeHTTP(w, r)
	})
}

// handleHealth provides a simple health check endpoint
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SphereInfo is the JSON form of a sphere
type SphereInfo struct {
	Index    int        `json:"index"`
	Center   [3]float32 `json:"center"`
	Radius   float32    `json:"radius"`
	Material string     `json:"material"`
	Albedo   [3]float32 `json:"albedo"`
}

// SceneResponse describes a scene
type SceneResponse struct {
	ID           string         `json:"id"`
	Background   [3]float32     `json:"background"`
	CameraOrigin [3]float32     `json:"cameraOrigin"`
	Spheres      []SphereInfo   `json:"spheres"`
	Materials    map[string]int `json:"materials"`
}

// handleScene returns the sphere list of a scene
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	id := sceneParam(r.URL.Query())
	sceneObj, err := s.createScene(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	response := SceneResponse{
		ID:           id,
		Background:   vecArray(sceneObj.Background),
		CameraOrigin: vecArray(sceneObj.CameraOrigin),
		Spheres:      make([]SphereInfo, len(sceneObj.Spheres)),
		Materials:    make(map[string]int),
	}
	for kind, count := range sceneObj.CountByKind() {
		response.Materials[kind.String()] = count
	}
	for i, sphere := range sceneObj.Spheres {
		response.Spheres[i] = SphereInfo{
			Index:    i,
			Center:   vecArray(sphere.Center),
			Radius:   sphere.Radius,
			Material: sphere.Material.Kind.String(),
			Albedo:   vecArray(sphere.Material.Albedo),
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.options.ScenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// createScene resolves a built-in id or a "file:<name>" id from the scenes
// directory
func (s *Server) createScene(id string) (*scene.Scene, error) {
	if !strings.HasPrefix(id, "file:") {
		return scene.NewBuiltinScene(id)
	}

	files, err := scene.ListSceneFiles(s.options.ScenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return loaders.LoadSceneFileIn(s.options.ScenesDir, info.FilePath)
		}
	}
	return nil, errors.New("scene file not found").
		WithType(scene.ErrTypeUnknownScene).
		WithTag("id", id)
}

// frameConfig reads the render dimensions and quality from the query
func (s *Server) frameConfig(values url.Values) (renderer.Config, error) {
	config := renderer.DefaultConfig()

	var err error
	if config.Width, err = parseIntParam(values, "width", 640, minDimension, maxDimension); err != nil {
		return config, err
	}
	if config.Height, err = parseIntParam(values, "height", 360, minDimension, maxDimension); err != nil {
		return config, err
	}
	if config.SampleGroups, err = parseIntParam(values, "groups", 2, 1, 64); err != nil {
		return config, err
	}
	if config.MaxDepth, err = parseIntParam(values, "depth", config.MaxDepth, 1, 100); err != nil {
		return config, err
	}

	config.Threads = threadsFor(config.Height, s.options.MaxThreads)
	return config, config.Validate()
}

// threadsFor returns the largest worker count up to maxThreads that divides height
func threadsFor(height, maxThreads int) int {
	for t := maxThreads; t > 1; t-- {
		if height%t == 0 {
			return t
		}
	}
	return 1
}

func sceneParam(values url.Values) string {
	if id := values.Get("scene"); id != "" {
		return id
	}
	return defaultScene
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, lo, hi int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New("invalid integer parameter").
			WithType(ErrTypeInvalidRequest).
			WithTag("param", key).
			WithTag("value", value)
	}
	if parsed < lo || parsed > hi {
		return 0, errors.New("parameter out of range").
			WithType(ErrTypeInvalidRequest).
			WithTag("param", key).
			WithTag("min", lo).
			WithTag("max", hi).
			WithTag("value", parsed)
	}
	return parsed, nil
}

// parseFloatParam parses a finite float parameter from URL query
func parseFloatParam(values url.Values, key string, defaultValue float32) (float32, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, errors.New("invalid float parameter").
			WithType(ErrTypeInvalidRequest).
			WithTag("param", key).
			WithTag("value", value)
	}
	return float32(parsed), nil
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logs.Warn(err)
	} else {
		logs.Debug(err)
	}
	writeJSON(w, status, errorResponse{
		Error: err.Error(),
		Type:  errors.Type(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logs.Warn(errors.New("encoding response failed").Wrap(err))
	}
}
