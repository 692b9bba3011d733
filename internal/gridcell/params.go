package gridcell

import (
	"math"

	"grid-cell-ratemap/internal/mathutil"
)

// Params holds the fixed constants of the three-wave interference model.
// A Params value is built once and copied into every Evaluator; nothing mutates it.
type Params struct {
	// Offsets are the wave directions relative to the cell orientation, in radians.
	Offsets [3]float64
	// Amplitude (A) and Bias (B) shape the exponential nonlinearity exp(A·(K−B)) − 1.
	Amplitude float64
	Bias      float64
	// Length is 4π/√3, the Corrected variant's frequency numerator.
	Length float64
}

// DefaultParams returns the constants from Blair et al. 2007 / Acker et al. 2019.
func DefaultParams() Params {
	return Params{
		Offsets: [3]float64{
			mathutil.Deg2Rad(-30),
			mathutil.Deg2Rad(30),
			mathutil.Deg2Rad(90),
		},
		Amplitude: 0.3,
		Bias:      -1.5,
		Length:    (4 * math.Pi) / mathutil.Sqrt3,
	}
}

// Directions returns the three unit wave vectors for orientation theta.
func (p Params) Directions(theta float64) [3]mathutil.Vec2 {
	var dirs [3]mathutil.Vec2
	for i, off := range p.Offsets {
		dirs[i] = mathutil.UnitDir(off + theta)
	}
	return dirs
}

// Rate applies the output nonlinearity to a summed cosine term K.
func (p Params) Rate(k float64) float64 {
	return math.Exp(p.Amplitude*(k-p.Bias)) - 1
}

// Bounds returns the closed output range, reached at K = −3 and K = 3.
func (p Params) Bounds() (lo, hi float64) {
	return p.Rate(-3), p.Rate(3)
}

// Peak is the firing rate at a field center, where all three waves are in phase.
func (p Params) Peak() float64 {
	return p.Rate(3)
}
