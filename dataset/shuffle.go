package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/cwbudde/algo-stellar/spectrum"
)

// Shuffle permutes x and y with the same random permutation, so x[i] and
// y[i] stay paired.
func Shuffle[X, Y any](x []X, y []Y, rng *rand.Rand) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d inputs, %d labels", spectrum.ErrArrayLengthMismatch, len(x), len(y))
	}
	rng.Shuffle(len(x), func(i, j int) {
		x[i], x[j] = x[j], x[i]
		y[i], y[j] = y[j], y[i]
	})
	return nil
}

// Shuffle permutes the set in place, keeping fluxes, labels and names
// aligned.
func (s *Set) Shuffle(rng *rand.Rand) error {
	if len(s.Names) != len(s.Fluxes) {
		return fmt.Errorf("%w: %d fluxes, %d names", spectrum.ErrArrayLengthMismatch, len(s.Fluxes), len(s.Names))
	}
	if len(s.Labels) != len(s.Fluxes) {
		return fmt.Errorf("%w: %d fluxes, %d labels", spectrum.ErrArrayLengthMismatch, len(s.Fluxes), len(s.Labels))
	}
	rng.Shuffle(len(s.Fluxes), func(i, j int) {
		s.Fluxes[i], s.Fluxes[j] = s.Fluxes[j], s.Fluxes[i]
		s.Labels[i], s.Labels[j] = s.Labels[j], s.Labels[i]
		s.Names[i], s.Names[j] = s.Names[j], s.Names[i]
	})
	return nil
}
