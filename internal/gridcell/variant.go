package gridcell

import (
	"fmt"
	"strings"
)

// Variant selects how a wavelength is turned into a spatial frequency.
type Variant int

const (
	// Corrected uses S = (4π/√3) / λ (Blair et al. 2007). Peaks are λ apart.
	Corrected Variant = iota
	// Raw uses S = 4π / √(3λ) (Acker et al. 2019). Peaks are √λ apart; it agrees
	// with Corrected only at λ = 1.
	Raw
)

var variantNames = [...]string{
	Corrected: "corrected",
	Raw:       "raw",
}

func (v Variant) String() string {
	if v.Valid() {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	return v == Corrected || v == Raw
}

// ParseVariant accepts the variant names and the names of the papers they come from.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "corrected", "blair", "":
		return Corrected, nil
	case "raw", "acker":
		return Raw, nil
	}
	return 0, fmt.Errorf("gridcell: unknown variant %q: %w", s, ErrInvalidParameter)
}

func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("gridcell: marshal %v: %w", v, ErrInvalidParameter)
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
