package augment

import (
	"fmt"

	"github.com/cwbudde/algo-stellar/dsp/signal"
)

// Default random parameter ranges, inclusive.
const (
	DefaultVsiniMin = 1
	DefaultVsiniMax = 300
	DefaultSNRMin   = 50
	DefaultSNRMax   = 250
	DefaultSamples  = 10
)

// SampleValues draws count distinct integers from [lo, hi] in draw order.
func SampleValues(gen *signal.Generator, lo, hi, count int) ([]float64, error) {
	if count < 0 || hi < lo || count > hi-lo+1 {
		return nil, fmt.Errorf("augment: cannot draw %d distinct values from [%d, %d]", count, lo, hi)
	}

	seen := make(map[int]bool, count)
	out := make([]float64, 0, count)
	for len(out) < count {
		v, err := gen.UniformInts(lo, hi, 1)
		if err != nil {
			return nil, err
		}
		if seen[v[0]] {
			continue
		}
		seen[v[0]] = true
		out = append(out, float64(v[0]))
	}
	return out, nil
}

// RandomPlan returns a plan with DefaultSamples random vsini and SNR values
// from the default ranges.
func RandomPlan(seed uint64) (Plan, error) {
	gen := signal.NewGenerator(signal.WithSeed(seed))
	vsini, err := SampleValues(gen, DefaultVsiniMin, DefaultVsiniMax, DefaultSamples)
	if err != nil {
		return Plan{}, err
	}
	snr, err := SampleValues(gen, DefaultSNRMin, DefaultSNRMax, DefaultSamples)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Vsini: vsini, SNR: snr}, nil
}
