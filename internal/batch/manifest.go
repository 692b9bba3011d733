package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"grid-cell-ratemap/internal/lattice"
	"grid-cell-ratemap/internal/mathutil"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Created time.Time       `json:"created"`
	Arena   ManifestArena   `json:"arena"`
	Entries []ManifestEntry `json:"entries"`
}

// ManifestArena records the lattice every entry was sampled on.
type ManifestArena struct {
	OriginX    float64 `json:"origin_x"`
	OriginY    float64 `json:"origin_y"`
	ExtentX    float64 `json:"extent_x"`
	ExtentY    float64 `json:"extent_y"`
	Resolution float64 `json:"resolution"`
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
}

// ManifestEntry represents one cell in the output manifest.
type ManifestEntry struct {
	Name           string         `json:"name"`
	Variant        string         `json:"variant"`
	Wavelength     float64        `json:"wavelength"`
	OrientationDeg float64        `json:"orientation_deg"`
	CenterX        float64        `json:"center_x"`
	CenterY        float64        `json:"center_y"`
	Image          string         `json:"image,omitempty"`
	Heatmap        string         `json:"heatmap,omitempty"`
	Stats          *lattice.Stats `json:"stats,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// NewManifest assembles a manifest for results sampled on lat.
func NewManifest(runID uuid.UUID, lat lattice.Lattice, results []Result) Manifest {
	rows, cols := lat.Dims()
	m := Manifest{
		RunID:   runID.String(),
		Created: time.Now().UTC(),
		Arena: ManifestArena{
			OriginX:    lat.Origin[0],
			OriginY:    lat.Origin[1],
			ExtentX:    lat.ExtentX,
			ExtentY:    lat.ExtentY,
			Resolution: lat.Resolution,
			Rows:       rows,
			Cols:       cols,
		},
		Entries: make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{
			Name:           r.Name,
			Variant:        r.Cell.Variant.String(),
			Wavelength:     r.Cell.Wavelength,
			OrientationDeg: mathutil.Rad2Deg(r.Cell.Orientation),
			CenterX:        r.Cell.Center[0],
			CenterY:        r.Cell.Center[1],
			Error:          r.Error,
		}
		if r.Success {
			stats := r.Stats
			e.Image = r.Image
			e.Heatmap = r.Heatmap
			e.Stats = &stats
		}
		m.Entries[i] = e
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
