package mathutil

import "math"

// UnitDir returns the unit vector pointing at angle a (radians, counter-clockwise from +x).
func UnitDir(a float64) Vec2 {
	return Vec2{math.Cos(a), math.Sin(a)}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
