package spectrum

import "github.com/cwbudde/algo-stellar/dsp/core"

// State records which one-shot perturbations a spectrum has been through and
// with which parameters.
type State struct {
	VsiniApplied          bool
	Vsini                 float64 // km/s
	NoiseApplied          bool
	SNR                   float64
	RadialVelocityApplied bool
	RadialVelocity        float64 // km/s
}

// Continuum is the fit a normalized spectrum was divided by.
type Continuum struct {
	AnchorWavelengths []float64
	AnchorFluxes      []float64
	Curve             []float64 // continuum evaluated at every wavelength
}

func (c *Continuum) clone() *Continuum {
	if c == nil {
		return nil
	}
	return &Continuum{
		AnchorWavelengths: core.Clone(c.AnchorWavelengths),
		AnchorFluxes:      core.Clone(c.AnchorFluxes),
		Curve:             core.Clone(c.Curve),
	}
}
