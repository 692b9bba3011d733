package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Fit rescales img so its longer side is size pixels, keeping the aspect ratio.
// Shrinking uses CatmullRom (approximates Lanczos); enlarging uses nearest
// neighbour so individual samples stay visible as blocks.
func Fit(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || w == 0 || h == 0 {
		return img
	}

	long := max(w, h)
	if long == size {
		return img
	}
	dw := max(1, (w*size+long/2)/long)
	dh := max(1, (h*size+long/2)/long)

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	var scaler draw.Scaler = draw.CatmullRom
	if long < size {
		scaler = draw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
