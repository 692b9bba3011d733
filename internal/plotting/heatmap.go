package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"grid-cell-ratemap/internal/lattice"
)

// fieldGrid adapts a sampled field to plotter.GridXYZ, with axes in cm.
type fieldGrid struct {
	f   *lattice.Field
	lat lattice.Lattice
}

func (g fieldGrid) Dims() (c, r int)   { return g.f.Cols, g.f.Rows }
func (g fieldGrid) Z(c, r int) float64 { return g.f.At(r, c) }
func (g fieldGrid) X(c int) float64    { return g.lat.Point(0, c)[0] }
func (g fieldGrid) Y(r int) float64    { return g.lat.Point(r, 0)[1] }

// grayPalette runs from white (low) to black (high), or the reverse when inverted.
type grayPalette struct {
	n      int
	invert bool
}

func (p grayPalette) Colors() []color.Color {
	cs := make([]color.Color, p.n)
	for i := range cs {
		t := float64(i) / float64(p.n-1)
		if !p.invert {
			t = 1 - t
		}
		g := uint8(t*255 + 0.5)
		cs[i] = color.Gray{Y: g}
	}
	return cs
}

// HeatmapOptions controls the plot produced by Heatmap.
type HeatmapOptions struct {
	Title  string
	Invert bool // high rates white instead of black
	Width  vg.Length
	Height vg.Length
	Levels int // palette size
}

// NewHeatmap builds a heat-map plot of f over lat with x/y axes in cm.
func NewHeatmap(f *lattice.Field, lat lattice.Lattice, opts HeatmapOptions) *plot.Plot {
	levels := opts.Levels
	if levels < 2 {
		levels = 64
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x (cm)"
	p.Y.Label.Text = "y (cm)"

	hm := plotter.NewHeatMap(fieldGrid{f: f, lat: lat}, grayPalette{n: levels, invert: opts.Invert})
	if hm.Max <= hm.Min {
		// Flat fields would divide by zero when picking palette entries.
		hm.Max = hm.Min + 1
	}
	p.Add(hm)
	return p
}

// SaveHeatmap renders f to path; the format follows the extension (png, svg, pdf, ...).
func SaveHeatmap(path string, f *lattice.Field, lat lattice.Lattice, opts HeatmapOptions) error {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 6 * vg.Inch
	}
	if h <= 0 {
		h = 6 * vg.Inch
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("plotting: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := NewHeatmap(f, lat, opts).Save(w, h, path); err != nil {
		return fmt.Errorf("plotting: save %s: %w", path, err)
	}
	return nil
}
