package specio

import (
	"io"
	"log/slog"
)

// Option configures the readers.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	hdu       int
	waveCol   string
	fluxCol   string
	errCol    string
	hasErrors bool
	labels    bool
	ranged    bool
	lo, hi    float64
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithErrorColumn tells ReadTSV that a third column holds flux errors.
func WithErrorColumn() Option {
	return func(c *config) {
		c.hasErrors = true
	}
}

// WithRange keeps only samples between the indices nearest to lo and hi,
// the upper one excluded. Bounds are in nanometres.
func WithRange(lo, hi float64) Option {
	return func(c *config) {
		c.ranged = true
		c.lo, c.hi = lo, hi
	}
}

// WithLabels parses stellar labels and applied perturbations from the
// file name.
func WithLabels() Option {
	return func(c *config) {
		c.labels = true
	}
}

// WithHDU selects the FITS header-data unit to read. The default is 0.
func WithHDU(i int) Option {
	return func(c *config) {
		if i >= 0 {
			c.hdu = i
		}
	}
}

// WithColumns names the FITS table columns holding wavelength, flux and
// error. Empty names are skipped: without a wavelength column the axis is
// computed from the header, without a flux column the HDU is read as an
// image.
func WithColumns(wave, flux, errs string) Option {
	return func(c *config) {
		c.waveCol, c.fluxCol, c.errCol = wave, flux, errs
	}
}

// WithLogger sets the logger used for per-file debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
