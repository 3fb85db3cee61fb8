package perturb

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-stellar/dsp/conv"
	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// SpeedOfLightKmS is the speed of light in km/s.
const SpeedOfLightKmS = 299792.458

// Broadener applies rotational broadening.
type Broadener struct {
	cfg config
}

// NewBroadener creates a Broadener.
func NewBroadener(opts ...Option) *Broadener {
	return &Broadener{cfg: applyOptions(opts)}
}

// MaxVsini returns the configured vsini ceiling in km/s.
func (b *Broadener) MaxVsini() float64 {
	return b.cfg.maxVsini
}

// RotationalKernel returns the normalized broadening kernel for a grid with
// spacing dl around reference wavelength l0. The kernel has odd length and is
// symmetric; its samples sum to 1. dl, l0 and vsini must be positive.
func RotationalKernel(dl, l0, vsini, epsilon float64) []float64 {
	dlL := l0 * vsini / SpeedOfLightKmS
	dx := dl / dlL

	// Extend to the bin containing dx = 1, the edge of the stellar disk.
	n := int(math.Ceil((2-dx)/2/dx))*2 + 1
	if n <= 1 {
		return []float64{1}
	}

	half := n / 2
	dx2 := dx * dx
	c1 := 2 * (1 - epsilon) / math.Pi / dlL / (1 - epsilon/3)
	c2 := 0.5 * epsilon / dlL / (1 - epsilon/3)

	kernel := make([]float64, n)
	for i := 1; i < n-1; i++ {
		k := math.Abs(float64(i - half))
		if i == half {
			kernel[i] = c2 - c2*dx2/12 + c1*math.Sqrt(4-dx2)/4 + c1*math.Asin(dx/2)/dx
			continue
		}
		lo := math.Sqrt(4 - dx2*(1-2*k)*(1-2*k))
		hi := math.Sqrt(4 - dx2*(1+2*k)*(1+2*k))
		kernel[i] = c2 - c2*dx2/12 - c2*dx2*k*k +
			c1/8*(lo-2*k*lo+hi+2*k*hi-
				4*math.Asin(dx*(k-0.5))/dx+4*math.Asin(dx*(k+0.5))/dx)
	}

	// Outermost bins are only partly covered by the disk.
	k0 := float64(half)
	a := 2 + dx - 2*dx*k0
	edge := 1 / 24.0 / dx * (3*c1*dx*math.Sqrt(4-dx2*(1-2*k0)*(1-2*k0))*(1-2*k0) +
		c2*a*a*(4+dx*(2*k0-1)) +
		12*c1*math.Acos(dx*(k0-0.5)))
	edge *= (1 - (k0-0.5)*dx) / dx
	kernel[0] = edge
	kernel[n-1] = edge

	// Bins were integrated as averages; scale by dx, then normalize.
	vecmath.ScaleBlockInPlace(kernel, dx)
	vecmath.ScaleBlockInPlace(kernel, 1/vecmath.Sum(kernel))
	return kernel
}

// Kernel validates vsini and the wavelength grid and returns the kernel for
// that grid.
func (b *Broadener) Kernel(wavelengths []float64, vsini float64) ([]float64, error) {
	if err := b.checkVsini(vsini); err != nil {
		return nil, err
	}
	if len(wavelengths) < 2 {
		return nil, fmt.Errorf("%w: %w: broadening needs at least 2 samples", spectrum.ErrWavelengthSpacing, spectrum.ErrEmpty)
	}
	dl, err := core.UniformStep(wavelengths, b.cfg.spacingTol)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spectrum.ErrWavelengthSpacing, err)
	}
	l0 := 0.5 * (wavelengths[0] + wavelengths[1])
	return RotationalKernel(dl, l0, vsini, LimbDarkening), nil
}

// Apply broadens s by vsini km/s.
func (b *Broadener) Apply(s *spectrum.Spectrum, vsini float64) (*spectrum.Spectrum, error) {
	if s.State().VsiniApplied {
		return nil, fmt.Errorf("%w: already broadened by %g km/s", spectrum.ErrVsiniAlreadyApplied, s.State().Vsini)
	}
	kernel, err := b.Kernel(s.Wavelengths(), vsini)
	if err != nil {
		return nil, err
	}

	depth := s.Fluxes()
	core.OneMinus(depth, depth)
	broadened, err := conv.ConvolveMode(depth, kernel, conv.ModeSame)
	if err != nil {
		return nil, err
	}
	core.OneMinus(broadened, broadened)

	out := s.Edit()
	out.SetFluxes(broadened)
	if err := out.MarkVsini(vsini); err != nil {
		return nil, err
	}

	b.cfg.logger.Debug("applied rotational broadening",
		slog.Float64("vsini", vsini),
		slog.Int("kernel", len(kernel)),
		slog.String("spectrum", s.String()))
	return out.Build()
}

func (b *Broadener) checkVsini(vsini float64) error {
	if !(vsini > 0) {
		return fmt.Errorf("%w: vsini must be > 0 km/s, got %g", spectrum.ErrParamTooSmall, vsini)
	}
	if vsini > b.cfg.maxVsini {
		return fmt.Errorf("%w: vsini %g exceeds %g km/s", spectrum.ErrParamTooLarge, vsini, b.cfg.maxVsini)
	}
	return nil
}
