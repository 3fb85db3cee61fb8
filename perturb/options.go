package perturb

import (
	"io"
	"log/slog"
)

const (
	// DefaultMaxVsini is the largest accepted projected rotational velocity, km/s.
	DefaultMaxVsini = 500.0

	// DefaultSpacingTolerance is the relative tolerance of the uniform-grid check.
	DefaultSpacingTolerance = 1e-6

	// LimbDarkening is the linear limb-darkening coefficient of the kernel.
	LimbDarkening = 0.6
)

// Option configures the components of this package.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	maxVsini   float64
	spacingTol float64
	seed       uint64
}

func defaultConfig() config {
	return config{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxVsini:   DefaultMaxVsini,
		spacingTol: DefaultSpacingTolerance,
		seed:       1,
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

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxVsini sets the vsini ceiling in km/s.
func WithMaxVsini(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.maxVsini = v
		}
	}
}

// WithSpacingTolerance sets the relative tolerance for the uniform
// wavelength spacing required by the broadening kernel.
func WithSpacingTolerance(tol float64) Option {
	return func(c *config) {
		if tol >= 0 {
			c.spacingTol = tol
		}
	}
}

// WithSeed sets the noise seed.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}
