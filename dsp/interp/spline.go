package interp

import (
	"fmt"

	gonuminterp "gonum.org/v1/gonum/interp"

	"github.com/cwbudde/algo-stellar/dsp/core"
)

// minCubicKnots is the smallest knot count for which a not-a-knot cubic
// is well defined; fewer knots fall back to straight segments.
const minCubicKnots = 4

// Spline is an interpolating curve through a set of knots. With four or more
// knots it is a C2 cubic with not-a-knot end conditions (the same curve as an
// unsmoothed cubic B-spline fit); with two or three knots it is piecewise
// linear. Beyond the outer knots the curve holds the end values.
type Spline struct {
	pred  gonuminterp.Predictor
	cubic bool
	lo    float64
	hi    float64
}

// FitSpline fits a Spline through (xs, ys). xs must be strictly increasing.
func FitSpline(xs, ys []float64) (*Spline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need 2, got %d", ErrTooFewKnots, len(xs))
	}
	if !core.StrictlyIncreasing(xs) {
		return nil, ErrNotIncreasing
	}

	var fp gonuminterp.FittablePredictor
	cubic := len(xs) >= minCubicKnots
	if cubic {
		fp = &gonuminterp.NotAKnotCubic{}
	} else {
		fp = &gonuminterp.PiecewiseLinear{}
	}
	if err := fp.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interp: spline fit: %w", err)
	}

	return &Spline{pred: fp, cubic: cubic, lo: xs[0], hi: xs[len(xs)-1]}, nil
}

// Cubic reports whether the spline uses cubic segments.
func (s *Spline) Cubic() bool {
	return s.cubic
}

// Domain returns the first and last knot abscissae.
func (s *Spline) Domain() (lo, hi float64) {
	return s.lo, s.hi
}

// At evaluates the spline at x.
func (s *Spline) At(x float64) float64 {
	return s.pred.Predict(core.Clamp(x, s.lo, s.hi))
}

// EvalTo evaluates the spline at every point of xs into dst.
func (s *Spline) EvalTo(dst, xs []float64) {
	for i, x := range xs[:len(dst)] {
		dst[i] = s.At(x)
	}
}
