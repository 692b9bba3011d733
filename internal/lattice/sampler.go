package lattice

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/mathutil"
)

// PointFunc evaluates the field at one point. It must be safe for concurrent use.
type PointFunc func(p mathutil.Vec2) (float64, error)

type options struct {
	workers int
}

// Option configures Sample.
type Option func(*options)

// WithWorkers sets the number of row bands sampled in parallel. n <= 0 means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Sample evaluates fn at every point of lat.
//
// Rows are split into contiguous bands, one goroutine per band; each band writes
// only its own rows, so the output needs no locking. The first error cancels the
// remaining bands and is returned with a nil field.
func Sample(ctx context.Context, lat Lattice, fn PointFunc, opts ...Option) (*Field, error) {
	if err := lat.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}

	rows, cols := lat.Dims()
	workers := min(o.workers, rows)
	band := (rows + workers - 1) / workers

	f := NewField(rows, cols)
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < rows; lo += band {
		hi := min(lo+band, rows)
		g.Go(func() error {
			return fillRows(gctx, lat, fn, f, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

// SampleCell samples one grid cell over lat.
func SampleCell(ctx context.Context, lat Lattice, e *gridcell.Evaluator, cell gridcell.Cell, opts ...Option) (*Field, error) {
	k, err := e.Bind(cell)
	if err != nil {
		return nil, err
	}
	return Sample(ctx, lat, k.At, opts...)
}

func fillRows(ctx context.Context, lat Lattice, fn PointFunc, f *Field, lo, hi int) error {
	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := f.Row(i)
		for j := range row {
			v, err := fn(lat.Point(i, j))
			if err != nil {
				return fmt.Errorf("lattice: sample [%d][%d]: %w", i, j, err)
			}
			row[j] = v
		}
	}
	return nil
}
