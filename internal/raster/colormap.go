package raster

import (
	"fmt"
	"strings"
)

// ColorMap maps a normalized value in [0, 1] to a gray level.
type ColorMap int

const (
	// Binary draws low rates white and high rates black.
	Binary ColorMap = iota
	// Gray draws low rates black and high rates white.
	Gray
)

// Level returns the 8-bit gray level for t, clamped to [0, 1].
func (cm ColorMap) Level(t float64) uint8 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if cm == Binary {
		t = 1 - t
	}
	return clamp255(t * 255)
}

func (cm ColorMap) String() string {
	switch cm {
	case Binary:
		return "binary"
	case Gray:
		return "gray"
	}
	return fmt.Sprintf("ColorMap(%d)", int(cm))
}

// ParseColorMap accepts "binary" and "gray" (or "grey").
func ParseColorMap(s string) (ColorMap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "":
		return Binary, nil
	case "gray", "grey":
		return Gray, nil
	}
	return 0, fmt.Errorf("raster: unknown color map %q", s)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
