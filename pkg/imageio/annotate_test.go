package imageio

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func filled(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestAnnotate(t *testing.T) {
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	img := filled(200, 100, blue)

	require.NoError(t, Annotate(img, "1,234 rays in 1.5s"))

	// the strip darkens the top rows
	require.NotEqual(t, blue, img.RGBAAt(199, 2))
	// everything far below the strip is untouched
	require.Equal(t, blue, img.RGBAAt(100, 90))

	bright := false
	for y := 0; y < 30 && !bright; y++ {
		for x := 0; x < 100; x++ {
			if c := img.RGBAAt(x, y); c.R > 0x80 && c.G > 0x80 {
				bright = true
				break
			}
		}
	}
	require.True(t, bright, "expected white glyph pixels")
}

func TestAnnotateEmptyText(t *testing.T) {
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	img := filled(10, 10, blue)

	require.NoError(t, Annotate(img, ""))
	require.Equal(t, filled(10, 10, blue), img)
}

func TestScale(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	scaled, err := Scale(filled(40, 20, red), 10, 5)
	require.NoError(t, err)

	require.Equal(t, image.Rect(0, 0, 10, 5), scaled.Bounds())
	require.Equal(t, red, scaled.RGBAAt(5, 2))

	_, err = Scale(filled(4, 4, red), 0, 4)
	require.Error(t, err)
}
