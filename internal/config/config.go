// Package config loads the stellaprep configuration from defaults, an
// optional YAML file and STELLAPREP_* environment variables, in that order
// of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-stellar/internal/logging"
)

const (
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "STELLAPREP_"
	// PathEnv names the variable holding the YAML file path.
	PathEnv = EnvPrefix + "CONFIG"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all settings of the command line tool.
type Config struct {
	LogLevel    string `yaml:"logLevel"    env:"LOG_LEVEL"`
	Workers     int    `yaml:"workers"     env:"WORKERS"`
	Seed        uint64 `yaml:"seed"        env:"SEED"`
	ErrorPolicy string `yaml:"errorPolicy" env:"ERROR_POLICY"`

	Input     InputConfig     `yaml:"input"     envPrefix:"INPUT_"`
	Output    OutputConfig    `yaml:"output"    envPrefix:"OUTPUT_"`
	Perturb   PerturbConfig   `yaml:"perturb"   envPrefix:"PERTURB_"`
	Grid      GridConfig      `yaml:"grid"      envPrefix:"GRID_"`
	Continuum ContinuumConfig `yaml:"continuum" envPrefix:"CONTINUUM_"`
}

// InputConfig describes where spectra are read from and how.
type InputConfig struct {
	Dir         string `yaml:"dir"         env:"DIR"`
	HDU         int    `yaml:"hdu"         env:"HDU"`
	WaveColumn  string `yaml:"waveColumn"  env:"WAVE_COLUMN"`
	FluxColumn  string `yaml:"fluxColumn"  env:"FLUX_COLUMN"`
	ErrorColumn string `yaml:"errorColumn" env:"ERROR_COLUMN"`
	HasErrors   bool   `yaml:"hasErrors"   env:"HAS_ERRORS"`
}

// OutputConfig selects the sinks for finished spectra. Either may be empty.
type OutputConfig struct {
	Dir     string `yaml:"dir"     env:"DIR"`
	Catalog string `yaml:"catalog" env:"CATALOG"`
}

// PerturbConfig lists the sweep parameters. With Random set and no explicit
// vsini or SNR values, Samples values are drawn from the default ranges.
type PerturbConfig struct {
	Vsini            []float64 `yaml:"vsini"            env:"VSINI"           envSeparator:","`
	SNR              []float64 `yaml:"snr"              env:"SNR"             envSeparator:","`
	RadialVelocity   []float64 `yaml:"radialVelocity"   env:"RADIAL_VELOCITY" envSeparator:","`
	Random           bool      `yaml:"random"           env:"RANDOM"`
	MaxVsini         float64   `yaml:"maxVsini"         env:"MAX_VSINI"`
	SpacingTolerance float64   `yaml:"spacingTolerance" env:"SPACING_TOLERANCE"`
}

// GridConfig describes the output wavelength grid. Points == 0 keeps the
// input sampling; Lo and Hi, when Hi > Lo, restrict the range in nm.
type GridConfig struct {
	Points int     `yaml:"points" env:"POINTS"`
	Lo     float64 `yaml:"lo"     env:"LO"`
	Hi     float64 `yaml:"hi"     env:"HI"`
}

// ContinuumConfig controls normalization. Knot == 0 disables it.
type ContinuumConfig struct {
	Knot           float64 `yaml:"knot"           env:"KNOT"`
	SmoothingWidth int     `yaml:"smoothingWidth" env:"SMOOTHING_WIDTH"`
	EdgeOffset     int     `yaml:"edgeOffset"     env:"EDGE_OFFSET"`
	ExcludeBalmer  bool    `yaml:"excludeBalmer"  env:"EXCLUDE_BALMER"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Seed:        1,
		ErrorPolicy: "skip",
		Perturb: PerturbConfig{
			MaxVsini:         500,
			SpacingTolerance: 1e-6,
		},
		Grid: GridConfig{Points: 27000},
		Continuum: ContinuumConfig{
			SmoothingWidth: 50,
			EdgeOffset:     10,
		},
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// PathEnv variable is consulted, and when that is empty too no file is
// read. environ replaces the process environment when non-nil.
func Load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path == "" {
		if environ != nil {
			path = environ[PathEnv]
		} else {
			path = os.Getenv(PathEnv)
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := decodeYAML(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeYAML overlays raw onto cfg. Unknown keys are rejected.
func decodeYAML(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every impossible setting.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !logging.ValidLevel(c.LogLevel) {
		bad("logLevel %q", c.LogLevel)
	}
	if c.Workers < 0 {
		bad("workers %d < 0", c.Workers)
	}
	if c.ErrorPolicy != "skip" && c.ErrorPolicy != "abort" {
		bad("errorPolicy %q (want skip or abort)", c.ErrorPolicy)
	}
	if c.Input.HDU < 0 {
		bad("input.hdu %d < 0", c.Input.HDU)
	}

	p := c.Perturb
	if !(p.MaxVsini > 0) {
		bad("perturb.maxVsini %g <= 0", p.MaxVsini)
	}
	if !(p.SpacingTolerance > 0) {
		bad("perturb.spacingTolerance %g <= 0", p.SpacingTolerance)
	}
	for _, v := range p.Vsini {
		if !(v > 0) || v > p.MaxVsini {
			bad("perturb.vsini %g outside (0, %g]", v, p.MaxVsini)
		}
	}
	for _, v := range p.SNR {
		if !(v > 0) {
			bad("perturb.snr %g <= 0", v)
		}
	}

	if c.Grid.Points == 1 || c.Grid.Points < 0 {
		bad("grid.points %d (want 0 or >= 2)", c.Grid.Points)
	}
	if (c.Grid.Lo != 0 || c.Grid.Hi != 0) && !(c.Grid.Hi > c.Grid.Lo) {
		bad("grid window [%g, %g] is empty", c.Grid.Lo, c.Grid.Hi)
	}

	if c.Continuum.Knot < 0 {
		bad("continuum.knot %g < 0", c.Continuum.Knot)
	}
	if c.Continuum.SmoothingWidth < 1 {
		bad("continuum.smoothingWidth %d < 1", c.Continuum.SmoothingWidth)
	}
	if c.Continuum.EdgeOffset < 0 {
		bad("continuum.edgeOffset %d < 0", c.Continuum.EdgeOffset)
	}

	return errors.Join(errs...)
}

// Window returns the grid window, or nil when none is configured.
func (g GridConfig) Window() *[2]float64 {
	if g.Hi > g.Lo {
		return &[2]float64{g.Lo, g.Hi}
	}
	return nil
}
