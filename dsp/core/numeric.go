package core

import (
	"errors"
	"fmt"
	"math"
)

const defaultEpsilon = 1e-12

// ErrTooShort is returned by helpers that need a minimum number of samples.
var ErrTooShort = errors.New("core: not enough samples")

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps, using an
// absolute comparison near zero and a relative one elsewhere.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// UniformStep returns the spacing of xs if every consecutive difference
// matches the first one within the relative tolerance relTol.
// It returns an error naming the first offending index otherwise.
func UniformStep(xs []float64, relTol float64) (float64, error) {
	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: need 2 samples, got %d", ErrTooShort, len(xs))
	}
	if relTol < 0 {
		relTol = 0
	}

	step := xs[1] - xs[0]
	limit := relTol * math.Abs(step)
	for i := 2; i < len(xs); i++ {
		d := xs[i] - xs[i-1]
		if math.Abs(d-step) > limit {
			return step, fmt.Errorf("spacing %g at index %d differs from %g", d, i, step)
		}
	}

	return step, nil
}

// StrictlyIncreasing reports whether xs[i] < xs[i+1] for all i.
// NaN values never compare as increasing.
func StrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}

// NearestIndex returns the index of the element of xs closest to value.
// Ties resolve to the lowest index. It returns -1 for an empty slice.
func NearestIndex(xs []float64, value float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, x := range xs {
		d := math.Abs(x - value)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// ArgMax returns the index of the first maximum in xs, ignoring NaN values.
// It returns -1 if xs holds no comparable value.
func ArgMax(xs []float64) int {
	best := -1
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if best < 0 || x > xs[best] {
			best = i
		}
	}
	return best
}

// MinMax returns the smallest and largest non-NaN values of xs.
// Both results are NaN when xs holds no comparable value.
func MinMax(xs []float64) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if math.IsNaN(lo) || x < lo {
			lo = x
		}
		if math.IsNaN(hi) || x > hi {
			hi = x
		}
	}
	return lo, hi
}
