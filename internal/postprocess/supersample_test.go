package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFitShrinkKeepsAspect(t *testing.T) {
	img := solid(1000, 500, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	out := Fit(img, 256)

	assert.Equal(t, image.Rect(0, 0, 256, 128), out.Bounds())
	px := out.NRGBAAt(100, 60)
	assert.InDelta(t, 40, int(px.R), 1)
	assert.Equal(t, uint8(255), px.A)
}

func TestFitEnlargeIsBlocky(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	out := Fit(img, 8)

	assert.Equal(t, image.Rect(0, 0, 8, 8), out.Bounds())
	assert.Equal(t, uint8(255), out.NRGBAAt(3, 3).R)
	assert.Equal(t, uint8(0), out.NRGBAAt(4, 4).R)
}

func TestFitNoop(t *testing.T) {
	img := solid(64, 32, color.NRGBA{A: 255})
	assert.Same(t, img, Fit(img, 0))
	assert.Same(t, img, Fit(img, 64))
}
