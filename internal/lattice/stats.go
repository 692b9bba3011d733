package lattice

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a field's values.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Stats computes min, max, mean and standard deviation over all samples.
func (f *Field) Stats() Stats {
	if len(f.Values) == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(f.Values, nil)
	return Stats{
		Min:    floats.Min(f.Values),
		Max:    floats.Max(f.Values),
		Mean:   mean,
		StdDev: std,
	}
}
