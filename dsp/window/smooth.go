package window

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-stellar/dsp/conv"
)

// Smooth filters data with a window of the given type and width used as a
// moving-average kernel. Near the edges only the overlapping part of the
// window contributes and the result is divided by that part's weight, so a
// constant input comes back unchanged over its whole length.
func Smooth(data []float64, t Type, width int, opts ...Option) ([]float64, error) {
	if err := validateLength(width); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, conv.ErrEmptyInput
	}

	kernel := Generate(t, width, opts...)
	if vecmath.Sum(kernel) == 0 {
		return nil, fmt.Errorf("%w: %s width %d", errZeroWeight, t, width)
	}

	out, err := conv.ConvolveMode(data, kernel, conv.ModeSame)
	if err != nil {
		return nil, err
	}

	ones := make([]float64, len(data))
	for i := range ones {
		ones[i] = 1
	}
	weight, err := conv.ConvolveMode(ones, kernel, conv.ModeSame)
	if err != nil {
		return nil, err
	}
	for i, w := range weight {
		weight[i] = 1 / w
	}

	vecmath.MulBlockInPlace(out, weight)
	return out, nil
}
