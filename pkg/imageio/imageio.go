// Package imageio converts rendered RGB24 frames into images and encodes
// them for files and HTTP responses.
package imageio

import (
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	// ErrTypeUnsupportedFormat marks an image format that cannot be encoded.
	ErrTypeUnsupportedFormat = "unsupported_format"
	// ErrTypeInvalidBuffer marks a frame buffer that does not match its dimensions.
	ErrTypeInvalidBuffer = "invalid_buffer"
)

// Format is an output image encoding
type Format string

// Supported formats
const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// ParseFormat returns the format with the given case-insensitive name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "png", "":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", errors.New("image format is not supported").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("format", name)
	}
}

// FormatFromPath picks the format matching the extension of path
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New("output path has no extension").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("path", path)
	}
	return ParseFormat(ext)
}

// ToImage copies an RGB24 frame buffer into an opaque RGBA image
func ToImage(buf []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(buf) != width*height*3 {
		return nil, errors.New("frame buffer does not match image dimensions").
			WithType(ErrTypeInvalidBuffer).
			WithTag("width", width).
			WithTag("height", height).
			WithTag("length", len(buf))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(buf); i, j = i+3, j+4 {
		img.Pix[j] = buf[i]
		img.Pix[j+1] = buf[i+1]
		img.Pix[j+2] = buf[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img, nil
}

// Encode writes img to w in the given format
func Encode(w io.Writer, format Format, img image.Image) error {
	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.New("image format is not supported").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("format", format)
	}

	if err != nil {
		return errors.New("encoding image failed").
			WithTag("format", format).
			Wrap(err)
	}
	return nil
}
