package gridcell

import (
	"fmt"
	"math"

	"grid-cell-ratemap/internal/mathutil"
)

// Evaluator computes firing rates from a fixed Params value.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	params Params
}

// NewEvaluator returns an evaluator over the given constants.
func NewEvaluator(p Params) *Evaluator {
	return &Evaluator{params: p}
}

// Default returns an evaluator over DefaultParams.
func Default() *Evaluator {
	return NewEvaluator(DefaultParams())
}

// Params returns a copy of the evaluator's constants.
func (e *Evaluator) Params() Params {
	return e.params
}

// Scale converts a wavelength into the spatial frequency S used inside the cosines.
func (e *Evaluator) Scale(wavelength float64, v Variant) (float64, error) {
	if !mathutil.IsFinite(wavelength) || wavelength <= 0 {
		return 0, fmt.Errorf("gridcell: wavelength %v must be finite and > 0: %w", wavelength, ErrInvalidParameter)
	}
	switch v {
	case Corrected:
		return e.params.Length / wavelength, nil
	case Raw:
		return (4 * math.Pi) / math.Sqrt(3*wavelength), nil
	}
	return 0, fmt.Errorf("gridcell: unknown %v: %w", v, ErrInvalidParameter)
}

// Spacing returns the distance between neighbouring firing peaks that the
// variant actually produces for the nominal wavelength.
func (e *Evaluator) Spacing(wavelength float64, v Variant) (float64, error) {
	s, err := e.Scale(wavelength, v)
	if err != nil {
		return 0, err
	}
	return (4 * math.Pi) / (mathutil.Sqrt3 * s), nil
}

// Evaluate returns the firing rate at point for a cell with the given
// wavelength, orientation theta and center, under variant v.
func (e *Evaluator) Evaluate(point mathutil.Vec2, wavelength, theta float64, center mathutil.Vec2, v Variant) (float64, error) {
	return e.EvaluateCell(point, Cell{
		Wavelength:  wavelength,
		Orientation: theta,
		Center:      center,
		Variant:     v,
	})
}

// EvaluateCell is Evaluate with the cell inputs bundled.
func (e *Evaluator) EvaluateCell(point mathutil.Vec2, c Cell) (float64, error) {
	k, err := e.Bind(c)
	if err != nil {
		return 0, err
	}
	return k.At(point)
}

// Bind validates c once and precomputes its wave directions and frequency.
// The returned Kernel produces bit-identical results to EvaluateCell.
func (e *Evaluator) Bind(c Cell) (*Kernel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s, err := e.Scale(c.Wavelength, c.Variant)
	if err != nil {
		return nil, err
	}
	return &Kernel{
		cell:   c,
		params: e.params,
		scale:  s,
		dirs:   e.params.Directions(c.Orientation),
	}, nil
}

// Kernel is one validated cell ready for repeated evaluation.
type Kernel struct {
	cell   Cell
	params Params
	scale  float64
	dirs   [3]mathutil.Vec2
}

// Cell returns the cell the kernel was bound to.
func (k *Kernel) Cell() Cell {
	return k.cell
}

// At returns the firing rate at point.
func (k *Kernel) At(point mathutil.Vec2) (float64, error) {
	if !point.IsFinite() {
		return 0, fmt.Errorf("gridcell: point %v is not finite: %w", point, ErrInvalidParameter)
	}
	r := point.Sub(k.cell.Center)

	var sum float64
	for _, d := range k.dirs {
		sum += math.Cos(k.scale * d.Dot(r))
	}

	rate := k.params.Rate(sum)
	if !mathutil.IsFinite(rate) {
		return 0, fmt.Errorf("gridcell: rate %v at %v for %v: %w", rate, point, k.cell, ErrNumericAnomaly)
	}
	return rate, nil
}
