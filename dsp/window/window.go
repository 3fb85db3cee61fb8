// Package window generates tapering windows and uses them as smoothing
// kernels for sampled spectra.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	// TypeRectangular is the boxcar: a plain moving average when used for smoothing.
	TypeRectangular Type = iota
	TypeTriangle
	TypeHann
	TypeGauss
)

// String returns the lowercase window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeTriangle:
		return "triangle"
	case TypeHann:
		return "hann"
	case TypeGauss:
		return "gauss"
	default:
		return "unknown"
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: 2.5}
}

// WithAlpha sets the Gaussian width parameter (larger is narrower).
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic selects the periodic form instead of the symmetric one.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}
	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// evalWindow evaluates window t at the normalized position x in [0, 1].
func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	case TypeHann:
		return 0.5 * (1 - math.Cos(2*math.Pi*x))
	case TypeGauss:
		d := cfg.alpha * (2*x - 1)
		return math.Exp(-0.5 * d * d)
	default:
		return 1
	}
}

func samplePosition(n, size int, periodic bool) float64 {
	if size == 1 {
		return 0.5
	}
	if periodic {
		return float64(n) / float64(size)
	}
	return float64(n) / float64(size-1)
}
