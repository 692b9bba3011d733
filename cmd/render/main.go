package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"grid-cell-ratemap/internal/batch"
	"grid-cell-ratemap/internal/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("render: ")

	// CLI flags
	configFile := flag.String("config", "", "Path to YAML/JSON config file")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Image format: webp or png (default: webp)")
	size := flag.Int("size", 0, "Longest image side in pixels (default: one pixel per sample)")
	testN := flag.Int("test", 0, "Render only the first N cells")
	dumpConfig := flag.String("dump-config", "", "Write the resolved config as YAML to this path and exit")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Format:    *format,
		Size:      *size,
		Workers:   *workers,
	})

	if *dumpConfig != "" {
		if err := config.Save(*dumpConfig, cfg); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Config: %s\n", *dumpConfig)
		return
	}

	// Limit for testing
	if *testN > 0 && *testN < len(cfg.Cells) {
		cfg.Cells = cfg.Cells[:*testN]
	}

	run, jobs, err := batch.FromConfig(cfg)
	if err != nil {
		log.Fatalf("invalid config:\n%v", err)
	}
	run.Logger = log.Default()

	runID := uuid.New()
	fmt.Printf("Grid cell rate maps → %s\n", run.Format)
	fmt.Printf("Run: %s\n", runID)
	fmt.Printf("Cells: %d, Workers: %d x %d\n", len(jobs), run.Workers, run.SampleWorkers)
	fmt.Printf("Arena: %v\n", run.Lattice)
	fmt.Printf("Output: %s\n", run.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, run, jobs)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %-16s %-9s λ=%-6g rate [%.4f, %.4f] → %s\n",
				r.Name, r.Cell.Variant, r.Cell.Wavelength, r.Stats.Min, r.Stats.Max, r.Image)
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(run.OutputDir, "manifest.json")
	if err := os.MkdirAll(run.OutputDir, 0755); err != nil {
		log.Printf("warning: %v", err)
	}
	if err := batch.WriteManifest(manifestPath, batch.NewManifest(runID, run.Lattice, results)); err != nil {
		log.Printf("warning: manifest write failed: %v", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
