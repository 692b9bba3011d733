package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/webp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// inspect prints the size and luminance distribution of rendered rate maps.
// With the binary color map, dark pixels are firing fields.
func main() {
	log.SetFlags(0)
	log.SetPrefix("inspect: ")

	bins := flag.Int("bins", 8, "Histogram bins")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-bins N] image...")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := inspect(path, *bins); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string, bins int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	b := img.Bounds()
	lum := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			lum = append(lum, float64(g.Y))
		}
	}
	if len(lum) == 0 {
		fmt.Printf("%s: %s, empty\n", path, format)
		return nil
	}

	mean, std := stat.MeanStdDev(lum, nil)
	fmt.Printf("%s: %s %dx%d\n", path, format, b.Dx(), b.Dy())
	fmt.Printf("  Luminance: min=%.0f max=%.0f mean=%.1f std=%.1f\n", floats.Min(lum), floats.Max(lum), mean, std)

	if bins < 1 {
		return nil
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, 0, 256)
	sorted := append([]float64(nil), lum...)
	floats.Argsort(sorted, make([]int, len(sorted)))
	counts := stat.Histogram(nil, dividers, sorted, nil)
	for i, c := range counts {
		fmt.Printf("  [%3.0f, %3.0f) %6.2f%%\n", dividers[i], dividers[i+1], 100*c/float64(len(lum)))
	}
	return nil
}
