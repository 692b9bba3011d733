package batch

import (
	"errors"
	"fmt"

	"grid-cell-ratemap/internal/config"
	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/raster"
)

// FromConfig builds the run configuration and job list for a resolved config.
// Every problem found is reported at once, joined into one error.
func FromConfig(cfg config.Config) (Config, []Job, error) {
	var errs []error

	format, err := raster.ParseFormat(cfg.Output.Format)
	if err != nil {
		errs = append(errs, err)
	}
	cm, err := raster.ParseColorMap(cfg.Output.ColorMap)
	if err != nil {
		errs = append(errs, err)
	}
	lat := cfg.Arena.Lattice()
	if err := lat.Validate(); err != nil {
		errs = append(errs, err)
	}

	cells := cfg.BatchCells()
	jobs := make([]Job, 0, len(cells))
	seen := make(map[string]bool, len(cells))
	for _, cc := range cells {
		name := FileName(cc.Name)
		if seen[name] {
			errs = append(errs, fmt.Errorf("batch: duplicate cell name %q", cc.Name))
			continue
		}
		seen[name] = true

		cell, err := cc.GridCell()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		jobs = append(jobs, Job{Name: cc.Name, Cell: cell})
	}
	if len(errs) > 0 {
		return Config{}, nil, errors.Join(errs...)
	}

	run := Config{
		OutputDir:  cfg.Output.Dir,
		Format:     format,
		Size:       cfg.Output.Size,
		ColorMap:   cm,
		FixedRange: cfg.Output.FixedRange,
		Heatmap:    cfg.Output.Heatmap,
		Lattice:    lat,
		Evaluator:  gridcell.Default(),
	}
	// Many cells run side by side; a lone cell gets every worker for its rows.
	run.Workers = max(1, min(cfg.Workers, len(jobs)))
	run.SampleWorkers = max(1, cfg.Workers/run.Workers)
	return run, jobs, nil
}
