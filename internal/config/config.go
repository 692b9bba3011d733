package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"grid-cell-ratemap/internal/gridcell"
	"grid-cell-ratemap/internal/lattice"
	"grid-cell-ratemap/internal/mathutil"
)

// Config holds the cell definitions, sampling arena and output settings.
type Config struct {
	// Cell is the single cell rendered by cmd/ratemap and the template for Cells.
	Cell CellConfig `mapstructure:"cell" yaml:"cell"`
	// Cells lists the cells rendered by a batch run. Empty means just Cell.
	Cells []CellConfig `mapstructure:"cells" yaml:"cells,omitempty"`

	Arena  ArenaConfig  `mapstructure:"arena" yaml:"arena"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Workers int `mapstructure:"workers" yaml:"workers"`

	// cellSet records that a loaded file had a cell block, so an explicit
	// orientation of 0° there is not replaced by the default.
	cellSet bool
}

// CellConfig describes one grid cell in config-file units (degrees, cm).
type CellConfig struct {
	Name           string  `mapstructure:"name" yaml:"name,omitempty"`
	Wavelength     float64 `mapstructure:"wavelength" yaml:"wavelength"`
	OrientationDeg float64 `mapstructure:"orientation_deg" yaml:"orientation_deg"`
	CenterX        float64 `mapstructure:"center_x" yaml:"center_x"`
	CenterY        float64 `mapstructure:"center_y" yaml:"center_y"`
	Variant        string  `mapstructure:"variant" yaml:"variant"`
}

// ArenaConfig describes the sampled rectangle.
type ArenaConfig struct {
	ExtentX    float64 `mapstructure:"extent_x" yaml:"extent_x"`
	ExtentY    float64 `mapstructure:"extent_y" yaml:"extent_y"`
	Resolution float64 `mapstructure:"resolution" yaml:"resolution"`
	OriginX    float64 `mapstructure:"origin_x" yaml:"origin_x"`
	OriginY    float64 `mapstructure:"origin_y" yaml:"origin_y"`
}

// OutputConfig controls where and how rate maps are written.
type OutputConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Format   string `mapstructure:"format" yaml:"format"` // webp, png
	Size     int    `mapstructure:"size" yaml:"size"`     // longest side in pixels, 0 = one pixel per sample
	ColorMap string `mapstructure:"color_map" yaml:"color_map"`
	Heatmap  bool   `mapstructure:"heatmap" yaml:"heatmap"`
	// FixedRange maps the model's theoretical output range onto the color map
	// instead of each field's own min/max, so images compare across cells.
	FixedRange bool `mapstructure:"fixed_range" yaml:"fixed_range"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir  string
	Format     string
	Size       int
	Workers    int
	Variant    string
	Wavelength float64
}

// Load reads a YAML or JSON config file (chosen by extension) and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	if err := vp.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.cellSet = vp.IsSet("cell")
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	cellGiven := c.cellSet || c.Cell != (CellConfig{})

	// CLI flags override config file
	if flags.OutputDir != "" {
		c.Output.Dir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Output.Format = flags.Format
	}
	if flags.Size > 0 {
		c.Output.Size = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Variant != "" {
		c.Cell.Variant = flags.Variant
	}
	// Any non-zero wavelength is taken as given; GridCell rejects negatives.
	if flags.Wavelength != 0 {
		c.Cell.Wavelength = flags.Wavelength
	}

	// Defaults reproduce the reference arena: 100×100 cm at 0.1 cm, λ = 20 cm, θ = 30°.
	// θ = 30° only applies when no cell was configured, since 0° is a valid orientation.
	if c.Cell.Wavelength == 0 {
		c.Cell.Wavelength = 20
	}
	if !cellGiven {
		c.Cell.OrientationDeg = 30
	}
	if c.Cell.Variant == "" {
		c.Cell.Variant = gridcell.Corrected.String()
	}
	if c.Cell.Name == "" {
		c.Cell.Name = "cell"
	}

	if c.Arena.ExtentX == 0 {
		c.Arena.ExtentX = 100
	}
	if c.Arena.ExtentY == 0 {
		c.Arena.ExtentY = 100
	}
	if c.Arena.Resolution == 0 {
		c.Arena.Resolution = 0.1
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "renders"
	}
	if c.Output.Format == "" {
		c.Output.Format = "webp"
	}
	if c.Output.ColorMap == "" {
		c.Output.ColorMap = "binary"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// BatchCells returns the cells of a batch run. Each entry inherits the
// wavelength and variant of Cell when it leaves them unset, and gets a
// positional name when it has none.
func (c *Config) BatchCells() []CellConfig {
	if len(c.Cells) == 0 {
		return []CellConfig{c.Cell}
	}
	out := make([]CellConfig, len(c.Cells))
	for i, cc := range c.Cells {
		if cc.Wavelength == 0 {
			cc.Wavelength = c.Cell.Wavelength
		}
		if cc.Variant == "" {
			cc.Variant = c.Cell.Variant
		}
		if cc.Name == "" {
			cc.Name = fmt.Sprintf("cell-%02d", i)
		}
		out[i] = cc
	}
	return out
}

// GridCell converts the config-file units into a model cell.
func (cc CellConfig) GridCell() (gridcell.Cell, error) {
	v, err := gridcell.ParseVariant(cc.Variant)
	if err != nil {
		return gridcell.Cell{}, err
	}
	cell := gridcell.Cell{
		Wavelength:  cc.Wavelength,
		Orientation: mathutil.Deg2Rad(cc.OrientationDeg),
		Center:      mathutil.Vec2{cc.CenterX, cc.CenterY},
		Variant:     v,
	}
	if err := cell.Validate(); err != nil {
		return gridcell.Cell{}, fmt.Errorf("config: cell %q: %w", cc.Name, err)
	}
	return cell, nil
}

// Lattice converts the arena into a sampling lattice.
func (a ArenaConfig) Lattice() lattice.Lattice {
	return lattice.Lattice{
		Origin:     mathutil.Vec2{a.OriginX, a.OriginY},
		ExtentX:    a.ExtentX,
		ExtentY:    a.ExtentY,
		Resolution: a.Resolution,
	}
}
