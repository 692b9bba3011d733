package gridcell

import (
	"fmt"

	"grid-cell-ratemap/internal/mathutil"
)

// Cell bundles the per-cell inputs of one evaluation.
type Cell struct {
	Wavelength  float64       // peak spacing λ, cm, > 0
	Orientation float64       // θ, radians
	Center      mathutil.Vec2 // pattern offset, cm
	Variant     Variant
}

// Validate returns an error wrapping ErrInvalidParameter if the cell cannot be evaluated.
func (c Cell) Validate() error {
	if !mathutil.IsFinite(c.Wavelength) || c.Wavelength <= 0 {
		return fmt.Errorf("gridcell: wavelength %v must be finite and > 0: %w", c.Wavelength, ErrInvalidParameter)
	}
	if !mathutil.IsFinite(c.Orientation) {
		return fmt.Errorf("gridcell: orientation %v is not finite: %w", c.Orientation, ErrInvalidParameter)
	}
	if !c.Center.IsFinite() {
		return fmt.Errorf("gridcell: center %v is not finite: %w", c.Center, ErrInvalidParameter)
	}
	if !c.Variant.Valid() {
		return fmt.Errorf("gridcell: unknown %v: %w", c.Variant, ErrInvalidParameter)
	}
	return nil
}

func (c Cell) String() string {
	return fmt.Sprintf("λ=%gcm θ=%.1f° c=(%g,%g) %s",
		c.Wavelength, mathutil.Rad2Deg(mathutil.WrapAngle(c.Orientation)), c.Center[0], c.Center[1], c.Variant)
}
