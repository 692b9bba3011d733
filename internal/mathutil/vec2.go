package mathutil

import "math"

// Vec2 is a 2-component vector (value type, stack-allocated).
// Index 0 is x, index 1 is y.
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

func (v Vec2) Len() float64 {
	return math.Hypot(v[0], v[1])
}

// IsFinite reports whether both components are neither NaN nor ±Inf.
func (v Vec2) IsFinite() bool {
	return IsFinite(v[0]) && IsFinite(v[1])
}

// IsFinite reports whether f is neither NaN nor ±Inf.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
