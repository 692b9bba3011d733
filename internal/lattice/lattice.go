package lattice

import (
	"fmt"
	"math"

	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/mathutil"
)

// MaxCells caps rows*cols so a bad resolution cannot request an absurd allocation.
const MaxCells = 1 << 27

// roundOff is the largest distance from an integer that extent/resolution may
// have and still count as that integer (100/0.1 must give 1000, not 1001).
const roundOff = 1e-9

// Lattice describes a regular grid of sample points over a rectangle.
// Row i varies y, column j varies x: Point(i, j) = Origin + (j·Resolution, i·Resolution).
type Lattice struct {
	Origin     mathutil.Vec2
	ExtentX    float64 // cm
	ExtentY    float64 // cm
	Resolution float64 // cm between neighbouring samples
}

// Default is the 100 cm × 100 cm arena at 0.1 cm resolution (1000×1000 samples).
func Default() Lattice {
	return Lattice{ExtentX: 100, ExtentY: 100, Resolution: 0.1}
}

// Validate returns an error wrapping gridcell.ErrInvalidParameter for unusable lattices.
func (l Lattice) Validate() error {
	if !mathutil.IsFinite(l.Resolution) || l.Resolution <= 0 {
		return fmt.Errorf("lattice: resolution %v must be finite and > 0: %w", l.Resolution, gridcell.ErrInvalidParameter)
	}
	if !mathutil.IsFinite(l.ExtentX) || l.ExtentX <= 0 {
		return fmt.Errorf("lattice: extent x %v must be finite and > 0: %w", l.ExtentX, gridcell.ErrInvalidParameter)
	}
	if !mathutil.IsFinite(l.ExtentY) || l.ExtentY <= 0 {
		return fmt.Errorf("lattice: extent y %v must be finite and > 0: %w", l.ExtentY, gridcell.ErrInvalidParameter)
	}
	if !l.Origin.IsFinite() {
		return fmt.Errorf("lattice: origin %v is not finite: %w", l.Origin, gridcell.ErrInvalidParameter)
	}
	rows, cols := l.dims()
	if !mathutil.IsFinite(rows) || !mathutil.IsFinite(cols) || rows < 1 || cols < 1 {
		return fmt.Errorf("lattice: %gx%g cm at %g cm gives %gx%g samples: %w",
			l.ExtentX, l.ExtentY, l.Resolution, rows, cols, gridcell.ErrInvalidParameter)
	}
	if !(rows*cols <= MaxCells) {
		return fmt.Errorf("lattice: %gx%g samples exceeds %d: %w", rows, cols, MaxCells, gridcell.ErrInvalidParameter)
	}
	return nil
}

// Dims returns the sample counts, ceil(ExtentY/Resolution) by ceil(ExtentX/Resolution).
// Only meaningful for a lattice that passes Validate.
func (l Lattice) Dims() (rows, cols int) {
	r, c := l.dims()
	return int(r), int(c)
}

func (l Lattice) dims() (rows, cols float64) {
	return cellCount(l.ExtentY, l.Resolution), cellCount(l.ExtentX, l.Resolution)
}

func cellCount(extent, res float64) float64 {
	q := extent / res
	// Large quotients carry more than roundOff of division error; allow a few ulps.
	tol := math.Max(roundOff, 4*(math.Nextafter(q, math.Inf(1))-q))
	if r := math.Round(q); r >= 1 && math.Abs(q-r) <= tol {
		return r
	}
	return math.Ceil(q)
}

// Point returns the plane coordinates of sample [i][j].
func (l Lattice) Point(i, j int) mathutil.Vec2 {
	return mathutil.Vec2{
		l.Origin[0] + float64(j)*l.Resolution,
		l.Origin[1] + float64(i)*l.Resolution,
	}
}

func (l Lattice) String() string {
	rows, cols := l.Dims()
	return fmt.Sprintf("%gx%gcm @ %gcm from (%g,%g) [%dx%d]",
		l.ExtentX, l.ExtentY, l.Resolution, l.Origin[0], l.Origin[1], rows, cols)
}
