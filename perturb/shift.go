package perturb

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-stellar/spectrum"
)

// SpeedOfLight is the speed of light in m/s.
const SpeedOfLight = 299792458.0

// Shifter applies relativistic Doppler shifts to the wavelength axis.
//
// Apply(v) simulates a source moving at v, so positive v redshifts:
// λ' = λ·sqrt((1+β)/(1-β)). Code that shifts by v with the reciprocal factor
// sqrt((1-β)/(1+β)), as apply_rad_vel_shift does, matches Apply(-v), which
// is also Correct(v).
type Shifter struct {
	cfg config
}

// NewShifter creates a Shifter.
func NewShifter(opts ...Option) *Shifter {
	return &Shifter{cfg: applyOptions(opts)}
}

// DopplerFactor returns the observed-to-emitted wavelength ratio for a source
// receding at v km/s: sqrt((1+β)/(1-β)) with β = v/c.
func DopplerFactor(v float64) (float64, error) {
	beta := v * 1000 / SpeedOfLight
	if math.IsNaN(beta) || math.Abs(beta) >= 1 {
		return 0, fmt.Errorf("%w: |v| must be below c, got %g km/s", spectrum.ErrParamTooLarge, v)
	}
	return math.Sqrt((1 + beta) / (1 - beta)), nil
}

// Apply shifts s as observed from a source with line-of-sight velocity v
// km/s. Positive v moves every wavelength redward, negative v blueward, and
// zero leaves the axis unchanged.
func (sh *Shifter) Apply(s *spectrum.Spectrum, v float64) (*spectrum.Spectrum, error) {
	return sh.shift(s, v)
}

// Correct removes a measured line-of-sight velocity of v km/s:
// λ' = λ·sqrt((1-β)/(1+β)). Correct(Apply(s, v), v) restores the original
// axis up to rounding, but the result still counts as shifted.
func (sh *Shifter) Correct(s *spectrum.Spectrum, v float64) (*spectrum.Spectrum, error) {
	return sh.shift(s, -v)
}

func (sh *Shifter) shift(s *spectrum.Spectrum, v float64) (*spectrum.Spectrum, error) {
	st := s.State()
	if st.RadialVelocityApplied {
		return nil, fmt.Errorf("%w: already shifted by %g km/s", spectrum.ErrRadialVelocityAlreadyApplied, st.RadialVelocity)
	}
	factor, err := DopplerFactor(v)
	if err != nil {
		return nil, err
	}

	wl := s.Wavelengths()
	for i := range wl {
		wl[i] *= factor
	}

	out := s.Edit()
	out.SetWavelengths(wl)
	if err := out.MarkRadialVelocity(v); err != nil {
		return nil, err
	}

	sh.cfg.logger.Debug("applied radial velocity shift",
		slog.Float64("velocity_km_s", v),
		slog.Float64("factor", factor),
		slog.String("spectrum", s.String()))
	return out.Build()
}
