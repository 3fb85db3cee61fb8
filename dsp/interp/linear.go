package interp

import (
	"errors"
	"fmt"

	gonuminterp "gonum.org/v1/gonum/interp"

	"github.com/cwbudde/algo-stellar/dsp/core"
)

// Errors returned by interpolation functions.
var (
	ErrLengthMismatch = errors.New("interp: xs and ys differ in length")
	ErrTooFewKnots    = errors.New("interp: not enough knots")
	ErrNotIncreasing  = errors.New("interp: knot abscissae must be strictly increasing")
)

// LinearTo interpolates (xs, ys) at every point of grid into dst.
// Outside [xs[0], xs[len-1]] the nearest end value is used; a single knot
// gives a constant. dst must have the length of grid.
func LinearTo(dst, grid, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return fmt.Errorf("%w: got 0", ErrTooFewKnots)
	}
	if len(dst) != len(grid) {
		return fmt.Errorf("%w: dst %d vs grid %d", ErrLengthMismatch, len(dst), len(grid))
	}

	if len(xs) == 1 {
		for i := range dst {
			dst[i] = ys[0]
		}
		return nil
	}
	if !core.StrictlyIncreasing(xs) {
		return ErrNotIncreasing
	}

	var pl gonuminterp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return fmt.Errorf("interp: linear fit: %w", err)
	}
	for i, g := range grid {
		dst[i] = pl.Predict(g)
	}
	return nil
}
