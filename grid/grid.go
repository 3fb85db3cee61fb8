// Package grid resamples spectra onto fixed-size uniform wavelength grids,
// the layout a classifier expects for its input vector.
package grid

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/dsp/interp"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// DefaultPoints is the grid size used by the classifier input layer.
const DefaultPoints = 27000

// AngstromThreshold is the smallest wavelength taken to mean the axis is in
// Angstrom rather than nanometres.
const AngstromThreshold = 1000.0

// Errors returned by Resample.
var (
	ErrTooFewPoints = errors.New("grid: need at least 2 output points")
	ErrEmptyWindow  = errors.New("grid: wavelength window selects fewer than 2 samples")
)

// Option configures Resample.
type Option func(*config)

type config struct {
	window     bool
	lo, hi     float64
	replaceNaN bool
	logger     *slog.Logger
}

// WithWindow restricts the input to the samples between the indices nearest
// lo and hi (nanometres, after unit conversion). The sample nearest hi is
// excluded.
func WithWindow(lo, hi float64) Option {
	return func(c *config) {
		c.window = true
		c.lo, c.hi = lo, hi
	}
}

// WithReplaceNaN controls whether NaN fluxes are set to the continuum level
// 1.0 before interpolation. It is on by default.
func WithReplaceNaN(v bool) Option {
	return func(c *config) {
		c.replaceNaN = v
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// ToNanometres returns wl converted from Angstrom to nm when its smallest
// value exceeds AngstromThreshold, and a copy of wl otherwise. The second
// result reports whether a conversion happened.
func ToNanometres(wl []float64) ([]float64, bool) {
	out := core.Clone(wl)
	lo, _ := core.MinMax(out)
	if !(lo > AngstromThreshold) {
		return out, false
	}
	floats.Scale(0.1, out)
	return out, true
}

// Window returns the half-open index range [left, right) whose ends are the
// samples nearest lo and hi.
func Window(wl []float64, lo, hi float64) (left, right int) {
	return core.NearestIndex(wl, lo), core.NearestIndex(wl, hi)
}

// Resample returns s linearly interpolated onto points uniformly spaced
// wavelengths spanning its (windowed) range. Errors and continuum artifacts
// are dropped; labels and perturbation state are kept.
func Resample(s *spectrum.Spectrum, points int, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := config{
		replaceNaN: true,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if points < 2 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewPoints, points)
	}

	flux := s.Fluxes()
	replaced := 0
	if cfg.replaceNaN {
		for i, f := range flux {
			if math.IsNaN(f) {
				flux[i] = 1
				replaced++
			}
		}
	}

	wl, converted := ToNanometres(s.Wavelengths())

	if cfg.window {
		left, right := Window(wl, cfg.lo, cfg.hi)
		if right-left < 2 {
			return nil, fmt.Errorf("%w: [%g, %g] -> indices [%d, %d)", ErrEmptyWindow, cfg.lo, cfg.hi, left, right)
		}
		wl, flux = wl[left:right], flux[left:right]
	}

	if len(wl) < 2 {
		return nil, fmt.Errorf("%w: resampling needs at least 2 input samples", spectrum.ErrEmpty)
	}

	lo, hi := core.MinMax(wl)
	target := make([]float64, points)
	floats.Span(target, lo, hi)

	out := make([]float64, points)
	if err := interp.LinearTo(out, target, wl, flux); err != nil {
		return nil, err
	}

	cfg.logger.Debug("resampled spectrum",
		slog.String("spectrum", s.String()),
		slog.Int("points", points),
		slog.Bool("angstrom", converted),
		slog.Int("nan_replaced", replaced),
		slog.Float64("lo", lo),
		slog.Float64("hi", hi))

	return s.Edit().
		SetWavelengths(target).
		SetFluxes(out).
		SetErrors(nil).
		ClearContinuum().
		Build()
}
