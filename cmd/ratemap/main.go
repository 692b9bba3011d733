package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"grid-cell-ratemap/internal/batch"
	"grid-cell-ratemap/internal/config"
	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/lattice"
	"grid-cell-ratemap/internal/plotting"
	"grid-cell-ratemap/internal/postprocess"
	"grid-cell-ratemap/internal/raster"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ratemap: ")

	// CLI flags
	configFile := flag.String("config", "", "Path to YAML/JSON config file")
	wavelength := flag.Float64("wavelength", 0, "Distance between firing peaks in cm (default: 20)")
	theta := flag.Float64("theta", 30, "Grid orientation in degrees")
	centerX := flag.Float64("cx", 0, "Pattern center x in cm")
	centerY := flag.Float64("cy", 0, "Pattern center y in cm")
	variant := flag.String("variant", "", "Frequency rule: corrected (Blair) or raw (Acker)")
	extentX := flag.Float64("width", 100, "Arena width in cm")
	extentY := flag.Float64("height", 100, "Arena height in cm")
	resolution := flag.Float64("resolution", 0.1, "Sample spacing in cm")
	out := flag.String("out", "", "Output image path, .webp or .png (default: <output dir>/<cell>.<format>)")
	size := flag.Int("size", 0, "Longest image side in pixels (default: one pixel per sample)")
	colorMap := flag.String("colormap", "", "binary (high rates black) or gray (high rates white)")
	heatmap := flag.String("heatmap", "", "Also write an axis-labelled heat map to this path (.png/.svg/.pdf)")
	compare := flag.Bool("compare", false, "Also render the other frequency variant for comparison")
	workers := flag.Int("workers", 0, "Number of sampling goroutines (default: NumCPU)")

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
		Size:       *size,
		Workers:    *workers,
		Variant:    *variant,
		Wavelength: *wavelength,
	})
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theta":
			cfg.Cell.OrientationDeg = *theta
		case "cx":
			cfg.Cell.CenterX = *centerX
		case "cy":
			cfg.Cell.CenterY = *centerY
		case "width":
			cfg.Arena.ExtentX = *extentX
		case "height":
			cfg.Arena.ExtentY = *extentY
		case "resolution":
			cfg.Arena.Resolution = *resolution
		case "colormap":
			cfg.Output.ColorMap = *colorMap
		}
	})

	cell, err := cfg.Cell.GridCell()
	if err != nil {
		log.Fatal(err)
	}
	cm, err := raster.ParseColorMap(cfg.Output.ColorMap)
	if err != nil {
		log.Fatal(err)
	}
	lat := cfg.Arena.Lattice()

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(cfg.Output.Dir, batch.FileName(cfg.Cell.Name)+"."+cfg.Output.Format)
	}

	eval := gridcell.Default()
	fmt.Printf("Grid cell rate map: %v\n", cell)
	fmt.Printf("Arena: %v, Workers: %d\n", lat, cfg.Workers)

	cells := []gridcell.Cell{cell}
	paths := []string{outPath}
	if *compare {
		other := cell
		other.Variant = gridcell.Raw
		if cell.Variant == gridcell.Raw {
			other.Variant = gridcell.Corrected
		}
		cells = append(cells, other)
		paths = append(paths, withSuffix(outPath, "-"+other.Variant.String()))
	}

	ctx := context.Background()
	for i, c := range cells {
		start := time.Now()
		field, err := lattice.SampleCell(ctx, lat, eval, c, lattice.WithWorkers(cfg.Workers))
		if err != nil {
			log.Fatalf("sampling %v: %v", c, err)
		}
		spacing, err := eval.Spacing(c.Wavelength, c.Variant)
		if err != nil {
			log.Fatal(err)
		}
		s := field.Stats()
		fmt.Printf("  %-9s %dx%d in %v, peak spacing %.3f cm, rate [%.4f, %.4f] mean %.4f\n",
			c.Variant, field.Rows, field.Cols, time.Since(start).Round(time.Millisecond), spacing, s.Min, s.Max, s.Mean)

		opts := raster.Options{ColorMap: cm}
		if cfg.Output.FixedRange {
			opts.Min, opts.Max = eval.Params().Bounds()
		}
		img := postprocess.Fit(raster.RenderField(field, opts), cfg.Output.Size)
		if err := raster.WriteFile(paths[i], img); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  Image: %s\n", paths[i])

		if *heatmap != "" {
			hp := *heatmap
			if i > 0 {
				hp = withSuffix(hp, "-"+c.Variant.String())
			}
			err := plotting.SaveHeatmap(hp, field, lat, plotting.HeatmapOptions{
				Title:  c.String(),
				Invert: cm == raster.Gray,
			})
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("  Heat map: %s\n", hp)
		}
	}
}

// withSuffix inserts suffix before the file extension.
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
