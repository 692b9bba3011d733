package raster

import (
	"image"

	"grid-cell-ratemap/internal/lattice"
)

// Options controls how field values become gray levels.
type Options struct {
	ColorMap ColorMap
	// Min and Max fix the value range mapped onto the color map. When Max <= Min
	// the field's own min and max are used instead.
	Min, Max float64
}

// RenderField rasterizes a sampled field, one pixel per sample. Row i of the
// field becomes image row i and column j becomes image column j.
func RenderField(f *lattice.Field, opts Options) *image.NRGBA {
	return Fill(f, opts).NRGBA()
}

// Fill maps every sample of f to a gray level.
// A field with no spread (max == min) renders as mid gray.
func Fill(f *lattice.Field, opts Options) *FrameBuffer {
	lo, hi := opts.Min, opts.Max
	if hi <= lo {
		s := f.Stats()
		lo, hi = s.Min, s.Max
	}
	span := hi - lo

	fb := NewFrameBuffer(f.Cols, f.Rows)
	if span < 1e-12 {
		mid := opts.ColorMap.Level(0.5)
		for i := range fb.Gray {
			fb.Gray[i] = mid
		}
		return fb
	}

	inv := 1.0 / span
	for i, v := range f.Values {
		fb.Gray[i] = opts.ColorMap.Level((v - lo) * inv)
	}
	return fb
}
