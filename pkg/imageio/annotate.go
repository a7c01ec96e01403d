package imageio

import (
	"image"
	"image/color"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	annotationSize    = 14
	annotationPadding = 6
)

var (
	annotationFont     *opentype.Font
	annotationFontErr  error
	annotationFontOnce sync.Once
)

func loadAnnotationFont() (*opentype.Font, error) {
	annotationFontOnce.Do(func() {
		annotationFont, annotationFontErr = opentype.Parse(goregular.TTF)
	})
	return annotationFont, annotationFontErr
}

// Annotate stamps a line of text over a dark strip along the top of img
func Annotate(img draw.Image, text string) error {
	if text == "" {
		return nil
	}

	f, err := loadAnnotationFont()
	if err != nil {
		return errors.New("parsing annotation font failed").Wrap(err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    annotationSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return errors.New("creating annotation face failed").Wrap(err)
	}
	defer func() {
		_ = face.Close()
	}()

	metrics := face.Metrics()
	bounds := img.Bounds()
	strip := image.Rect(
		bounds.Min.X,
		bounds.Min.Y,
		bounds.Max.X,
		bounds.Min.Y+(metrics.Height.Ceil()+2*annotationPadding),
	).Intersect(bounds)
	draw.Draw(img, strip, image.NewUniform(color.RGBA{A: 0xA0}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(bounds.Min.X + annotationPadding),
			Y: fixed.I(bounds.Min.Y+annotationPadding) + metrics.Ascent,
		},
	}
	d.DrawString(text)
	return nil
}

// Scale resizes img to width x height with Catmull-Rom filtering
func Scale(img image.Image, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("scaled dimensions must be positive").
			WithType(ErrTypeInvalidBuffer).
			WithTag("width", width).
			WithTag("height", height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}
