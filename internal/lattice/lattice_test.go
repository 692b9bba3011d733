package lattice

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/mathutil"
)

func TestDims(t *testing.T) {
	cases := []struct {
		name       string
		lat        Lattice
		rows, cols int
	}{
		{"default", Default(), 1000, 1000},
		{"wide", Lattice{ExtentX: 10, ExtentY: 5, Resolution: 1}, 5, 10},
		{"fractional", Lattice{ExtentX: 2.5, ExtentY: 1.2, Resolution: 1}, 2, 3},
		{"smaller than resolution", Lattice{ExtentX: 0.3, ExtentY: 0.3, Resolution: 1}, 1, 1},
		{"thirds", Lattice{ExtentX: 1, ExtentY: 1, Resolution: 1.0 / 3}, 3, 3},
		{"just past a whole sample", Lattice{ExtentX: 100.00000001, ExtentY: 1, Resolution: 1}, 1, 101},
		{"tiny extent", Lattice{ExtentX: 1e-12, ExtentY: 1, Resolution: 1}, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, cols := tc.lat.Dims()
			assert.Equal(t, tc.rows, rows)
			assert.Equal(t, tc.cols, cols)
		})
	}
}

func TestPoint(t *testing.T) {
	lat := Lattice{ExtentX: 10, ExtentY: 5, Resolution: 0.5}
	assert.Equal(t, mathutil.Vec2{0, 0}, lat.Point(0, 0))
	// Column index moves x, row index moves y.
	assert.Equal(t, mathutil.Vec2{1.5, 0}, lat.Point(0, 3))
	assert.Equal(t, mathutil.Vec2{0, 1.5}, lat.Point(3, 0))

	lat.Origin = mathutil.Vec2{-50, 10}
	if diff := cmp.Diff(mathutil.Vec2{-49, 12}, lat.Point(4, 2)); diff != "" {
		t.Errorf("Point(4, 2) mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	bad := []Lattice{
		{ExtentX: 10, ExtentY: 10, Resolution: 0},
		{ExtentX: 10, ExtentY: 10, Resolution: -1},
		{ExtentX: 0, ExtentY: 10, Resolution: 1},
		{ExtentX: 10, ExtentY: -2, Resolution: 1},
		{ExtentX: math.Inf(1), ExtentY: 10, Resolution: 1},
		{ExtentX: 10, ExtentY: 10, Resolution: math.NaN()},
		{ExtentX: 10, ExtentY: 10, Resolution: 1, Origin: mathutil.Vec2{math.NaN(), 0}},
		{ExtentX: 1e6, ExtentY: 1e6, Resolution: 1e-3},
		// extent/resolution overflows to +Inf
		{ExtentX: 1e308, ExtentY: 1, Resolution: 1e-10},
		// extent/resolution underflows to 0 rows
		{ExtentX: 1, ExtentY: 5e-324, Resolution: 10},
	}
	for _, lat := range bad {
		assert.ErrorIs(t, lat.Validate(), gridcell.ErrInvalidParameter, "%+v", lat)
	}
}

func TestFieldAccessors(t *testing.T) {
	f := NewField(2, 3)
	copy(f.Values, []float64{1, 2, 3, 4, 5, 6})

	assert.Equal(t, 6.0, f.At(1, 2))
	assert.Equal(t, []float64{4, 5, 6}, f.Row(1))

	grid := f.Grid()
	if diff := cmp.Diff([][]float64{{1, 2, 3}, {4, 5, 6}}, grid); diff != "" {
		t.Errorf("Grid mismatch (-want +got):\n%s", diff)
	}
	grid[0][0] = 99
	assert.Equal(t, 1.0, f.At(0, 0), "Grid must copy")
}

func TestStats(t *testing.T) {
	f := NewField(2, 2)
	copy(f.Values, []float64{-1, 1, 3, 5})

	s := f.Stats()
	assert.Equal(t, -1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.InDelta(t, 2.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(20.0/3), s.StdDev, 1e-12)

	assert.Equal(t, Stats{}, (&Field{}).Stats())
}
