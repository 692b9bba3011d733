package lattice

// Field is a sampled rate map stored row-major: Values[i*Cols+j] is sample [i][j].
type Field struct {
	Rows   int
	Cols   int
	Values []float64
}

// NewField allocates a zeroed rows×cols field.
func NewField(rows, cols int) *Field {
	return &Field{
		Rows:   rows,
		Cols:   cols,
		Values: make([]float64, rows*cols),
	}
}

// At returns sample [i][j].
func (f *Field) At(i, j int) float64 {
	return f.Values[i*f.Cols+j]
}

// Row returns row i as a sub-slice of Values (not a copy).
func (f *Field) Row(i int) []float64 {
	return f.Values[i*f.Cols : (i+1)*f.Cols]
}

// Grid copies the field into nested slices for consumers that want [][]float64.
func (f *Field) Grid() [][]float64 {
	out := make([][]float64, f.Rows)
	for i := range out {
		out[i] = append([]float64(nil), f.Row(i)...)
	}
	return out
}
