package renderer

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/geometry"
	"github.com/df07/go-simd-raytracer/pkg/integrator"
)

// rowSeedStride decorrelates the generators of neighbouring rows.
const rowSeedStride = 2654435761

// Scene interface to avoid circular imports
type Scene interface {
	GetSpheres() []geometry.Sphere
	GetBackground() core.Vec3
}

// Renderer turns a scene into RGB24 frames
type Renderer struct {
	scene   Scene
	config  Config
	camera  *Camera
	tracer  integrator.Integrator
	stripes [][]int
}

// NewRenderer validates config and prepares a renderer for scene
func NewRenderer(scene Scene, config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.New("creating renderer failed").Wrap(err)
	}

	stripes, err := Partition(config.Height, config.Threads)
	if err != nil {
		return nil, errors.New("creating renderer failed").Wrap(err)
	}

	return &Renderer{
		scene:   scene,
		config:  config,
		camera:  NewCamera(config),
		tracer:  integrator.NewPathTracer(scene.GetSpheres(), scene.GetBackground(), config.MaxDepth),
		stripes: stripes,
	}, nil
}

// Config returns the configuration the renderer was built with
func (r *Renderer) Config() Config {
	return r.config
}

// Camera returns the camera used to generate primary rays
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render draws one frame seen from origin into buf, which must hold exactly
// Width*Height*3 bytes. Rows are rendered in parallel with one worker per
// stripe and Render returns once every worker has finished.
func (r *Renderer) Render(buf []byte, origin core.Vec3) (RenderStats, error) {
	if len(buf) != r.config.BufferSize() {
		return RenderStats{}, errors.New("frame buffer has the wrong size").
			WithType(ErrTypeInvalidBuffer).
			WithTag("expected", r.config.BufferSize()).
			WithTag("actual", len(buf))
	}

	start := time.Now()
	workers := newWorkerPool(r, r.stripes)
	stats := workers.run(buf, origin)
	stats.Duration = time.Since(start)

	instrumentFrame(stats)
	logs.WithTag("width", stats.Width).
		WithTag("height", stats.Height).
		WithTag("threads", stats.Threads).
		WithTag("bounces", stats.Bounces).
		WithTag("duration", stats.Duration).
		Debug("frame rendered")
	return stats, nil
}

// RenderFrame renders one frame and returns only its wall time
func (r *Renderer) RenderFrame(buf []byte, origin core.Vec3) (time.Duration, error) {
	stats, err := r.Render(buf, origin)
	if err != nil {
		return 0, err
	}
	return stats.Duration, nil
}

// sampleScale maps a pixel color sum to the 0-255 range
func (r *Renderer) sampleScale() float32 {
	return 255 / float32(r.config.SamplesPerPixel())
}

// rowSampler returns the generator used for every sample of row
func (r *Renderer) rowSampler(row int) *core.LCG8 {
	return core.NewLCG8(r.config.Seed + uint32(row)*rowSeedStride)
}
