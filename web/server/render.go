package server

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/imageio"
	"github.com/df07/go-simd-raytracer/pkg/renderer"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// handleFrame renders one frame from the requested camera origin and
// returns it as an encoded image
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	renderID := uuid.NewString()

	config, err := s.frameConfig(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format, err := imageio.ParseFormat(query.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	previewWidth, err := parseIntParam(query, "preview", 0, minDimension, maxDimension)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id := sceneParam(query)
	sceneObj, err := s.createScene(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	origin, err := parseOrigin(query, sceneObj.CameraOrigin)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rt, err := renderer.NewRenderer(sceneObj, config)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	buf := make([]byte, config.BufferSize())
	stats, err := s.render(rt, buf, origin)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.New("rendering frame failed").
			WithTag("render_id", renderID).
			Wrap(err))
		return
	}

	logs.WithTag("render_id", renderID).
		WithTag("scene", id).
		WithTag("width", config.Width).
		WithTag("height", config.Height).
		WithTag("threads", config.Threads).
		WithTag("duration", stats.Duration).
		Info("frame rendered")

	img, err := imageio.ToImage(buf, config.Width, config.Height)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if previewWidth > 0 {
		if img, err = imageio.Scale(img, previewWidth, previewHeight(config, previewWidth)); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if query.Get("annotate") == "true" {
		p := message.NewPrinter(language.English)
		text := p.Sprintf("%d rays in %dms", stats.TotalSamples, stats.Duration.Milliseconds())
		if err := imageio.Annotate(img, text); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	var encoded bytes.Buffer
	if err := imageio.Encode(&encoded, format, img); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(encoded.Len()))
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := encoded.WriteTo(w); err != nil {
		logs.WithTag("render_id", renderID).Debug(err)
	}
}

// previewHeight keeps the frame aspect ratio at the given preview width
func previewHeight(config renderer.Config, width int) int {
	return max(1, (width*config.Height+config.Width/2)/config.Width)
}

// render runs one frame while holding the render lock
func (s *Server) render(rt *renderer.Renderer, buf []byte, origin core.Vec3) (renderer.RenderStats, error) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	return rt.Render(buf, origin)
}

// parseOrigin reads the camera position from x, y and z, defaulting each
// coordinate to the scene camera
func parseOrigin(values url.Values, fallback core.Vec3) (core.Vec3, error) {
	var err error
	origin := fallback
	if origin.X, err = parseFloatParam(values, "x", fallback.X); err != nil {
		return origin, err
	}
	if origin.Y, err = parseFloatParam(values, "y", fallback.Y); err != nil {
		return origin, err
	}
	if origin.Z, err = parseFloatParam(values, "z", fallback.Z); err != nil {
		return origin, err
	}
	return origin, nil
}
