package plotting

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"grid-cell-ratemap/internal/lattice"
)

func TestFieldGrid(t *testing.T) {
	lat := lattice.Lattice{ExtentX: 3, ExtentY: 2, Resolution: 1}
	f := lattice.NewField(2, 3)
	copy(f.Values, []float64{0, 1, 2, 3, 4, 5})

	var g plotter.GridXYZ = fieldGrid{f: f, lat: lat}
	c, r := g.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 5.0, g.Z(2, 1))
	assert.Equal(t, 2.0, g.X(2))
	assert.Equal(t, 1.0, g.Y(1))
}

func TestGrayPalette(t *testing.T) {
	cs := grayPalette{n: 3}.Colors()
	require.Len(t, cs, 3)
	assert.Equal(t, color.Gray{Y: 255}, cs[0])
	assert.Equal(t, color.Gray{Y: 0}, cs[2])

	cs = grayPalette{n: 2, invert: true}.Colors()
	assert.Equal(t, color.Gray{Y: 0}, cs[0])
}

func TestSaveHeatmap(t *testing.T) {
	lat := lattice.Lattice{ExtentX: 4, ExtentY: 4, Resolution: 1}
	f := lattice.NewField(4, 4)
	for i := range f.Values {
		f.Values[i] = float64(i % 5)
	}

	path := filepath.Join(t.TempDir(), "plots", "cell.png")
	require.NoError(t, SaveHeatmap(path, f, lat, HeatmapOptions{Title: "cell"}))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, st.Size())
}

func TestSaveHeatmapFlatField(t *testing.T) {
	lat := lattice.Lattice{ExtentX: 2, ExtentY: 2, Resolution: 1}
	path := filepath.Join(t.TempDir(), "flat.png")
	assert.NoError(t, SaveHeatmap(path, lattice.NewField(2, 2), lat, HeatmapOptions{}))
}
