package renderer

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	// ErrTypeInvalidConfig marks configuration values the renderer cannot work with.
	ErrTypeInvalidConfig = "invalid_config"
	// ErrTypeInvalidBuffer marks an output buffer of the wrong size.
	ErrTypeInvalidBuffer = "invalid_buffer"
)

// Config contains rendering configuration
type Config struct {
	Width          int     // Image width in pixels
	Height         int     // Image height in pixels
	Threads        int     // Number of row workers; must divide Height
	SampleGroups   int     // Clusters of 8 rays traced per pixel
	MaxDepth       int     // Maximum ray bounce depth
	ViewportHeight float32 // Height of the viewport in world units
	FocalLength    float32 // Distance from the camera to the viewport
	Seed           uint32  // Base seed for the per-row generators
}

// DefaultConfig returns the full HD configuration
func DefaultConfig() Config {
	return Config{
		Width:          1920,
		Height:         1080,
		Threads:        12,
		SampleGroups:   10,
		MaxDepth:       20,
		ViewportHeight: 2,
		FocalLength:    1,
		Seed:           0,
	}
}

// SamplesPerPixel returns the number of rays traced for every pixel
func (c Config) SamplesPerPixel() int {
	return c.SampleGroups * laneCount
}

// BufferSize returns the length of the RGB24 buffer a frame fills
func (c Config) BufferSize() int {
	return c.Width * c.Height * 3
}

// Validate rejects configurations the renderer cannot honor.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New("image dimensions must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("width", c.Width).
			WithTag("height", c.Height)

	case c.Threads <= 0:
		return errors.New("thread count must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("threads", c.Threads)

	case c.Height%c.Threads != 0:
		return errors.New("thread count must divide the image height").
			WithType(ErrTypeInvalidConfig).
			WithTag("height", c.Height).
			WithTag("threads", c.Threads)

	case c.SampleGroups <= 0:
		return errors.New("sample group count must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("sample_groups", c.SampleGroups)

	case c.MaxDepth <= 0:
		return errors.New("max depth must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("max_depth", c.MaxDepth)

	case c.ViewportHeight <= 0 || c.FocalLength <= 0:
		return errors.New("viewport height and focal length must be positive").
			WithType(ErrTypeInvalidConfig).
			WithTag("viewport_height", c.ViewportHeight).
			WithTag("focal_length", c.FocalLength)
	}
	return nil
}
