package lattice

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/mathutil"
)

func demoCell() gridcell.Cell {
	return gridcell.Cell{
		Wavelength:  20,
		Orientation: mathutil.Deg2Rad(30),
		Variant:     gridcell.Corrected,
	}
}

func TestSampleShape(t *testing.T) {
	e := gridcell.Default()

	f, err := SampleCell(context.Background(), Lattice{ExtentX: 10, ExtentY: 5, Resolution: 1}, e, demoCell())
	require.NoError(t, err)
	assert.Equal(t, 5, f.Rows)
	assert.Equal(t, 10, f.Cols)
	assert.Len(t, f.Values, 50)
}

func TestSampleDefaultShape(t *testing.T) {
	if testing.Short() {
		t.Skip("samples a million points")
	}
	f, err := SampleCell(context.Background(), Default(), gridcell.Default(), demoCell())
	require.NoError(t, err)
	assert.Equal(t, 1000, f.Rows)
	assert.Equal(t, 1000, f.Cols)

	// Field center sits on the origin, so sample [0][0] is a peak.
	assert.InDelta(t, gridcell.DefaultParams().Peak(), f.At(0, 0), 1e-12)
}

func TestSampleMatchesEvaluate(t *testing.T) {
	e := gridcell.Default()
	lat := Lattice{ExtentX: 12, ExtentY: 7, Resolution: 0.5}

	for _, v := range []gridcell.Variant{gridcell.Corrected, gridcell.Raw} {
		cell := demoCell()
		cell.Variant = v
		cell.Center = mathutil.Vec2{3, 4}

		f, err := SampleCell(context.Background(), lat, e, cell, WithWorkers(3))
		require.NoError(t, err)

		for i := 0; i < f.Rows; i++ {
			for j := 0; j < f.Cols; j++ {
				p := mathutil.Vec2{float64(j) * lat.Resolution, float64(i) * lat.Resolution}
				want, err := e.Evaluate(p, cell.Wavelength, cell.Orientation, cell.Center, v)
				require.NoError(t, err)
				assert.Equal(t, want, f.At(i, j), "[%d][%d]", i, j)
			}
		}
	}
}

func TestSampleWorkerCountDoesNotChangeResult(t *testing.T) {
	e := gridcell.Default()
	lat := Lattice{ExtentX: 30, ExtentY: 17, Resolution: 0.7}

	serial, err := SampleCell(context.Background(), lat, e, demoCell(), WithWorkers(1))
	require.NoError(t, err)

	for _, n := range []int{2, 5, 16, 100} {
		parallel, err := SampleCell(context.Background(), lat, e, demoCell(), WithWorkers(n))
		require.NoError(t, err)
		assert.Equal(t, serial.Values, parallel.Values, "workers=%d", n)
	}
}

func TestSampleEvaluatesEachPointOnce(t *testing.T) {
	lat := Lattice{ExtentX: 9, ExtentY: 11, Resolution: 1}
	var calls atomic.Int64
	seen := make([]atomic.Int32, 99)

	f, err := Sample(context.Background(), lat, func(p mathutil.Vec2) (float64, error) {
		calls.Add(1)
		seen[int(p[1])*9+int(p[0])].Add(1)
		return p[0] + 100*p[1], nil
	}, WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, int64(99), calls.Load())
	for idx := range seen {
		assert.Equal(t, int32(1), seen[idx].Load(), "cell %d", idx)
	}
	assert.Equal(t, 3+100*7.0, f.At(7, 3))
}

func TestSampleInvalidLattice(t *testing.T) {
	bad := []Lattice{
		{ExtentX: 10, ExtentY: 10},
		{ExtentX: 1e308, ExtentY: 1, Resolution: 1e-10},
		{ExtentX: 1, ExtentY: 5e-324, Resolution: 10},
	}
	for _, lat := range bad {
		called := false
		f, err := Sample(context.Background(), lat, func(mathutil.Vec2) (float64, error) {
			called = true
			return 0, nil
		}, WithWorkers(4))
		assert.ErrorIs(t, err, gridcell.ErrInvalidParameter, "%+v", lat)
		assert.Nil(t, f)
		assert.False(t, called)
	}
}

func TestSampleInvalidCell(t *testing.T) {
	cell := demoCell()
	cell.Wavelength = -5

	f, err := SampleCell(context.Background(), Lattice{ExtentX: 4, ExtentY: 4, Resolution: 1}, gridcell.Default(), cell)
	assert.ErrorIs(t, err, gridcell.ErrInvalidParameter)
	assert.Nil(t, f)
}

func TestSamplePropagatesFirstError(t *testing.T) {
	errBoom := errors.New("boom")
	lat := Lattice{ExtentX: 20, ExtentY: 20, Resolution: 1}

	f, err := Sample(context.Background(), lat, func(p mathutil.Vec2) (float64, error) {
		if p[1] == 13 && p[0] == 2 {
			return 0, errBoom
		}
		return 1, nil
	}, WithWorkers(4))
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "[13][2]")
	assert.Nil(t, f)
}

func TestSampleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := SampleCell(ctx, Lattice{ExtentX: 10, ExtentY: 10, Resolution: 1}, gridcell.Default(), demoCell())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, f)
}
