package mathutil

import "math"

// Sqrt3 is √3, the ratio between a hexagonal lattice's row spacing and its wave spacing.
var Sqrt3 = math.Sqrt(3)

// WrapAngle folds an angle in radians into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
