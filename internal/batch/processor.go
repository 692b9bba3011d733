package batch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/lattice"
	"grid-cell-ratemap/internal/plotting"
	"grid-cell-ratemap/internal/postprocess"
	"grid-cell-ratemap/internal/raster"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir  string
	Format     raster.Format
	Size       int // longest image side, 0 = one pixel per sample
	ColorMap   raster.ColorMap
	FixedRange bool
	Heatmap    bool

	Lattice   lattice.Lattice
	Evaluator *gridcell.Evaluator

	// Workers is the number of cells rendered at once; SampleWorkers the row
	// bands used inside each cell's sampling run.
	Workers       int
	SampleWorkers int

	// Logger receives progress lines. Nil means log.Default().
	Logger *log.Logger
}

// Job is one cell to render.
type Job struct {
	Name string
	Cell gridcell.Cell
}

// Result holds the outcome of rendering one cell.
type Result struct {
	Name    string
	Cell    gridcell.Cell
	Image   string // path relative to OutputDir
	Heatmap string // path relative to OutputDir, empty if not rendered
	Stats   lattice.Stats
	Success bool
	Error   string
}

// Run renders all jobs using a worker pool. A failed job does not stop the others.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.SampleWorkers <= 0 {
		cfg.SampleWorkers = 1
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = gridcell.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					logger.Printf("  [%d/%d] %.2f cells/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(ctx, cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(ctx context.Context, cfg Config, job Job) Result {
	res := Result{Name: job.Name, Cell: job.Cell}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	field, err := lattice.SampleCell(ctx, cfg.Lattice, cfg.Evaluator, job.Cell, lattice.WithWorkers(cfg.SampleWorkers))
	if err != nil {
		return fail(err)
	}
	res.Stats = field.Stats()

	opts := raster.Options{ColorMap: cfg.ColorMap}
	if cfg.FixedRange {
		opts.Min, opts.Max = cfg.Evaluator.Params().Bounds()
	}
	img := raster.RenderField(field, opts)
	img = postprocess.Fit(img, cfg.Size)

	base := FileName(job.Name)
	res.Image = base + cfg.Format.Ext()
	if err := raster.WriteFile(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		return fail(err)
	}

	if cfg.Heatmap {
		res.Heatmap = base + "-heatmap.png"
		err := plotting.SaveHeatmap(filepath.Join(cfg.OutputDir, res.Heatmap), field, cfg.Lattice, plotting.HeatmapOptions{
			Title:  fmt.Sprintf("%s: %v", job.Name, job.Cell),
			Invert: cfg.ColorMap == raster.Gray,
		})
		if err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}

// FileName turns a job name into a single path element.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "cell"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}
		return r
	}, name)
}
