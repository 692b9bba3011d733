package gridcell

import "errors"

var (
	// ErrInvalidParameter marks caller errors: non-positive wavelength, extent or
	// resolution, non-finite coordinates, unknown variant.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericAnomaly marks a NaN or Inf produced from valid inputs.
	ErrNumericAnomaly = errors.New("numeric anomaly")
)
