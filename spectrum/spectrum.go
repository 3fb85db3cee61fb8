package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-stellar/dsp/core"
)

// Spectrum is an immutable sampled stellar spectrum. Use [New] or a
// [Builder] to create one; the zero value is not valid.
type Spectrum struct {
	wavelengths []float64
	fluxes      []float64
	errors      []float64 // nil when absent
	labels      Labels
	state       State
	continuum   *Continuum
}

// Option configures New.
type Option func(*Builder)

// WithLabels attaches filename labels.
func WithLabels(l Labels) Option {
	return func(b *Builder) {
		b.s.labels = l
	}
}

// WithState presets the perturbation record, for spectra read back from
// files whose names carry the applied parameters.
func WithState(st State) Option {
	return func(b *Builder) {
		b.s.state = st
	}
}

// New validates and copies the given arrays into a Spectrum. errors may be
// nil.
func New(wavelengths, fluxes, errors []float64, opts ...Option) (*Spectrum, error) {
	b := &Builder{s: Spectrum{
		wavelengths: core.Clone(wavelengths),
		fluxes:      core.Clone(fluxes),
		errors:      core.Clone(errors),
	}}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b.Build()
}

// Len returns the number of samples.
func (s *Spectrum) Len() int {
	return len(s.wavelengths)
}

// Wavelengths returns a copy of the wavelength axis.
func (s *Spectrum) Wavelengths() []float64 {
	return core.Clone(s.wavelengths)
}

// Fluxes returns a copy of the flux values.
func (s *Spectrum) Fluxes() []float64 {
	return core.Clone(s.fluxes)
}

// Errors returns a copy of the per-sample errors, or nil.
func (s *Spectrum) Errors() []float64 {
	return core.Clone(s.errors)
}

// HasErrors reports whether the spectrum carries an error column.
func (s *Spectrum) HasErrors() bool {
	return s.errors != nil
}

// Wavelength returns the i-th wavelength.
func (s *Spectrum) Wavelength(i int) float64 {
	return s.wavelengths[i]
}

// Flux returns the i-th flux.
func (s *Spectrum) Flux(i int) float64 {
	return s.fluxes[i]
}

// Bounds returns the first and last wavelength.
func (s *Spectrum) Bounds() (lo, hi float64) {
	return s.wavelengths[0], s.wavelengths[len(s.wavelengths)-1]
}

// Labels returns the filename labels.
func (s *Spectrum) Labels() Labels {
	return s.labels
}

// State returns the perturbation record.
func (s *Spectrum) State() State {
	return s.state
}

// Continuum returns a copy of the continuum fit and whether one is attached.
func (s *Spectrum) Continuum() (Continuum, bool) {
	if s.continuum == nil {
		return Continuum{}, false
	}
	return *s.continuum.clone(), true
}

// Clone returns an independent copy of s.
func (s *Spectrum) Clone() *Spectrum {
	c := s.Edit().s
	return &c
}

// Edit starts a Builder initialised with a deep copy of s.
func (s *Spectrum) Edit() *Builder {
	return &Builder{s: Spectrum{
		wavelengths: core.Clone(s.wavelengths),
		fluxes:      core.Clone(s.fluxes),
		errors:      core.Clone(s.errors),
		labels:      s.labels,
		state:       s.state,
		continuum:   s.continuum.clone(),
	}}
}

// String summarises the spectrum for logs.
func (s *Spectrum) String() string {
	lo, hi := s.Bounds()
	return fmt.Sprintf("spectrum{%s n=%d %.4f..%.4f}", s.labels, s.Len(), lo, hi)
}

// Builder assembles a new Spectrum. Every setter copies its argument, so the
// caller keeps ownership of the slices it passes in. A Builder must not be
// used after Build.
type Builder struct {
	s Spectrum
}

// SetWavelengths replaces the wavelength axis.
func (b *Builder) SetWavelengths(wl []float64) *Builder {
	b.s.wavelengths = core.Clone(wl)
	return b
}

// SetFluxes replaces the flux values.
func (b *Builder) SetFluxes(f []float64) *Builder {
	b.s.fluxes = core.Clone(f)
	return b
}

// SetErrors replaces the error column. nil removes it.
func (b *Builder) SetErrors(e []float64) *Builder {
	b.s.errors = core.Clone(e)
	return b
}

// SetLabels replaces the filename labels.
func (b *Builder) SetLabels(l Labels) *Builder {
	b.s.labels = l
	return b
}

// SetContinuum attaches a continuum fit.
func (b *Builder) SetContinuum(c Continuum) *Builder {
	b.s.continuum = c.clone()
	return b
}

// ClearContinuum removes any attached continuum fit.
func (b *Builder) ClearContinuum() *Builder {
	b.s.continuum = nil
	return b
}

// MarkVsini records rotational broadening with vsini km/s.
func (b *Builder) MarkVsini(vsini float64) error {
	if b.s.state.VsiniApplied {
		return fmt.Errorf("%w: already broadened by %g km/s", ErrVsiniAlreadyApplied, b.s.state.Vsini)
	}
	b.s.state.VsiniApplied = true
	b.s.state.Vsini = vsini
	return nil
}

// MarkNoise records noise injection at the given SNR.
func (b *Builder) MarkNoise(snr float64) error {
	if b.s.state.NoiseApplied {
		return fmt.Errorf("%w: already noised at snr %g", ErrNoiseAlreadyApplied, b.s.state.SNR)
	}
	b.s.state.NoiseApplied = true
	b.s.state.SNR = snr
	return nil
}

// MarkRadialVelocity records a Doppler shift of v km/s.
func (b *Builder) MarkRadialVelocity(v float64) error {
	if b.s.state.RadialVelocityApplied {
		return fmt.Errorf("%w: already shifted by %g km/s", ErrRadialVelocityAlreadyApplied, b.s.state.RadialVelocity)
	}
	b.s.state.RadialVelocityApplied = true
	b.s.state.RadialVelocity = v
	return nil
}

// Build validates the accumulated values and returns the Spectrum.
func (b *Builder) Build() (*Spectrum, error) {
	s := b.s
	n := len(s.wavelengths)
	if n == 0 {
		return nil, ErrEmpty
	}
	if len(s.fluxes) != n {
		return nil, fmt.Errorf("%w: %d wavelengths, %d fluxes", ErrArrayLengthMismatch, n, len(s.fluxes))
	}
	if s.errors != nil && len(s.errors) != n {
		return nil, fmt.Errorf("%w: %d wavelengths, %d errors", ErrArrayLengthMismatch, n, len(s.errors))
	}
	for i, w := range s.wavelengths {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: wavelength %d is %v", ErrNotIncreasing, i, w)
		}
		if i > 0 && !(w > s.wavelengths[i-1]) {
			return nil, fmt.Errorf("%w: index %d (%g after %g)", ErrNotIncreasing, i, w, s.wavelengths[i-1])
		}
	}
	if c := s.continuum; c != nil {
		if len(c.Curve) != n {
			return nil, fmt.Errorf("%w: continuum has %d samples, spectrum %d", ErrArrayLengthMismatch, len(c.Curve), n)
		}
		if len(c.AnchorWavelengths) != len(c.AnchorFluxes) {
			return nil, fmt.Errorf("%w: %d anchor wavelengths, %d anchor fluxes",
				ErrArrayLengthMismatch, len(c.AnchorWavelengths), len(c.AnchorFluxes))
		}
	}

	b.s = Spectrum{}
	return &s, nil
}
