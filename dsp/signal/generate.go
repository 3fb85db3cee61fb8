// Package signal generates seeded random sequences and rescales sampled data.
package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream is the fixed second word of the PCG state. Only the seed varies.
const pcgStream = 0x9e3779b97f4a7c15

// Generator draws deterministic random sequences from a seeded PCG source.
// A Generator is stateful and not safe for concurrent use: successive calls
// continue the same stream.
type Generator struct {
	seed uint64
	src  *rand.PCG
	rng  *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator. The default seed is 1.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.SetSeed(g.seed)
	return g
}

// Seed returns the seed the current stream started from.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// SetSeed restarts the stream from seed.
func (g *Generator) SetSeed(seed uint64) {
	g.seed = seed
	g.src = rand.NewPCG(seed, pcgStream)
	g.rng = rand.New(g.src)
}

// GaussianNoise returns samples drawn from N(0, sigma^2).
func (g *Generator) GaussianNoise(sigma float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("noise sigma must be finite and >= 0: %f", sigma)
	}
	out := make([]float64, samples)
	if sigma == 0 {
		return out, nil
	}
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: g.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

// UniformInts returns n integers drawn uniformly from [lo, hi].
func (g *Generator) UniformInts(lo, hi, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("uniform count must be >= 0: %d", n)
	}
	if hi < lo {
		return nil, fmt.Errorf("uniform range is empty: [%d, %d]", lo, hi)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = lo + g.rng.IntN(hi-lo+1)
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
