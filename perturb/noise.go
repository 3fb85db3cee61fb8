package perturb

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/dsp/signal"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// NoiseInjector peak-normalizes flux and adds Gaussian noise with standard
// deviation 1/SNR. It is not safe for concurrent use; create one injector per
// goroutine, each with its own seed.
type NoiseInjector struct {
	cfg config
	gen *signal.Generator
}

// NewNoiseInjector creates a NoiseInjector. Injectors built with the same
// seed produce the same noise sequence.
func NewNoiseInjector(opts ...Option) *NoiseInjector {
	cfg := applyOptions(opts)
	return &NoiseInjector{
		cfg: cfg,
		gen: signal.NewGenerator(signal.WithSeed(cfg.seed)),
	}
}

// Seed returns the seed the injector was created with.
func (n *NoiseInjector) Seed() uint64 {
	return n.cfg.seed
}

// Apply returns s divided by its maximum flux plus N(0, 1/snr) noise.
// The rescaling is permanent: the output peak is near 1 regardless of the
// input amplitude.
func (n *NoiseInjector) Apply(s *spectrum.Spectrum, snr float64) (*spectrum.Spectrum, error) {
	st := s.State()
	if st.NoiseApplied {
		return nil, fmt.Errorf("%w: already noised at snr %g", spectrum.ErrNoiseAlreadyApplied, st.SNR)
	}
	if !(snr > 0) {
		return nil, fmt.Errorf("%w: snr must be > 0, got %g", spectrum.ErrParamTooSmall, snr)
	}

	flux := s.Fluxes()
	_, peak := core.MinMax(flux)
	if !(peak > 0) || math.IsInf(peak, 0) {
		return nil, fmt.Errorf("%w: peak flux %g", spectrum.ErrInvalidFlux, peak)
	}

	noise, err := n.gen.GaussianNoise(1/snr, len(flux))
	if err != nil {
		return nil, err
	}
	floats.Scale(1/peak, flux)
	floats.Add(flux, noise)

	out := s.Edit()
	out.SetFluxes(flux)
	if err := out.MarkNoise(snr); err != nil {
		return nil, err
	}

	n.cfg.logger.Debug("applied noise",
		slog.Float64("snr", snr),
		slog.Float64("peak", peak),
		slog.String("spectrum", s.String()))
	return out.Build()
}
