package continuum

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-stellar/dsp/core"
	"github.com/cwbudde/algo-stellar/dsp/interp"
	"github.com/cwbudde/algo-stellar/dsp/window"
	"github.com/cwbudde/algo-stellar/grid"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// ErrTooFewAnchors is returned when fewer than two anchors survive selection.
var ErrTooFewAnchors = errors.New("continuum: too few anchor points")

// Fit is the result of a continuum fit.
type Fit struct {
	AnchorWavelengths []float64
	AnchorFluxes      []float64
	Continuum         []float64 // evaluated at every input wavelength
	Cubic             bool      // false when too few anchors for a cubic
}

// Normalizer divides spectra by a spline continuum.
type Normalizer struct {
	cfg config
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts ...Option) *Normalizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Normalizer{cfg: cfg}
}

// Normalize fits the continuum of s with anchor windows knot wide (in the
// wavelength unit of s) and returns s divided by it. The fit is attached to
// the returned spectrum and also returned directly. Excluded bands are in nm;
// an axis that grid.ToNanometres would treat as Angstrom is matched against
// them at a tenth of its value.
func (n *Normalizer) Normalize(s *spectrum.Spectrum, knot float64) (*spectrum.Spectrum, Fit, error) {
	if !(knot > 0) {
		return nil, Fit{}, fmt.Errorf("%w: knot window must be > 0, got %g", spectrum.ErrParamTooSmall, knot)
	}

	wl := s.Wavelengths()
	flux, err := ForwardFill(s.Fluxes())
	if err != nil {
		return nil, Fit{}, err
	}

	smoothed, err := window.Smooth(flux, window.TypeRectangular, n.cfg.smoothingWidth)
	if err != nil {
		return nil, Fit{}, fmt.Errorf("continuum: smoothing: %w", err)
	}

	idx := n.anchors(wl, smoothed, knot)
	if len(idx) < 2 {
		return nil, Fit{}, fmt.Errorf("%w: %d found with %g windows", ErrTooFewAnchors, len(idx), knot)
	}

	fit := Fit{
		AnchorWavelengths: make([]float64, len(idx)),
		AnchorFluxes:      make([]float64, len(idx)),
		Continuum:         make([]float64, len(wl)),
	}
	for i, k := range idx {
		fit.AnchorWavelengths[i] = wl[k]
		fit.AnchorFluxes[i] = flux[k]
	}

	spl, err := interp.FitSpline(fit.AnchorWavelengths, fit.AnchorFluxes)
	if err != nil {
		return nil, Fit{}, fmt.Errorf("continuum: %w", err)
	}
	fit.Cubic = spl.Cubic()
	spl.EvalTo(fit.Continuum, wl)

	normalized := divide(flux, fit.Continuum)

	n.cfg.logger.Debug("normalized continuum",
		slog.String("spectrum", s.String()),
		slog.Float64("knot", knot),
		slog.Int("anchors", len(idx)),
		slog.Bool("cubic", fit.Cubic))

	out, err := s.Edit().
		SetFluxes(normalized).
		SetContinuum(spectrum.Continuum{
			AnchorWavelengths: fit.AnchorWavelengths,
			AnchorFluxes:      fit.AnchorFluxes,
			Curve:             fit.Continuum,
		}).
		Build()
	if err != nil {
		return nil, Fit{}, err
	}
	return out, fit, nil
}

// anchors returns the sorted, distinct anchor indices.
func (n *Normalizer) anchors(wl, smoothed []float64, knot float64) []int {
	last := wl[len(wl)-1]
	unit := 1.0
	if wl[0] > grid.AngstromThreshold {
		unit = 0.1
	}
	excluded := func(k int) bool { return n.excluded(wl[k] * unit) }
	seen := make(map[int]bool)
	var idx []int

	add := func(k int) {
		if k < 0 || seen[k] {
			return
		}
		seen[k] = true
		idx = append(idx, k)
	}

	for i := 0; ; i++ {
		lo := wl[0] + float64(i)*knot
		hi := lo + knot
		if !(hi < last) {
			break
		}

		left, right := core.NearestIndex(wl, lo), core.NearestIndex(wl, hi)
		k := peak(smoothed, left, right)
		if k >= 0 && excluded(k) {
			k = -1
			if i == 0 {
				// Retry on the first half of the window.
				k = peak(smoothed, left, left+(right-left)/2)
				if k >= 0 && excluded(k) {
					k = -1
				}
			}
		}
		add(k)
	}

	add(max(len(wl)-1-n.cfg.edgeOffset, 0))

	sort.Slice(idx, func(a, b int) bool { return wl[idx[a]] < wl[idx[b]] })
	return idx
}

func (n *Normalizer) excluded(w float64) bool {
	return slices.ContainsFunc(n.cfg.bands, func(b Band) bool { return b.Contains(w) })
}

// peak returns the index of the first maximum of xs[left:right], or -1 if the
// range is empty.
func peak(xs []float64, left, right int) int {
	if right <= left {
		return -1
	}
	k := core.ArgMax(xs[left:right])
	if k < 0 {
		return -1
	}
	return left + k
}

// ForwardFill returns a copy of flux with each NaN replaced by the last
// finite value before it. Leading NaNs take the first finite value.
func ForwardFill(flux []float64) ([]float64, error) {
	out := core.Clone(flux)
	first := slices.IndexFunc(out, func(v float64) bool { return !math.IsNaN(v) })
	if first < 0 {
		return nil, fmt.Errorf("%w: no finite flux to normalize", spectrum.ErrInvalidFlux)
	}

	prev := out[first]
	for i, v := range out {
		if math.IsNaN(v) {
			out[i] = prev
			continue
		}
		prev = v
	}
	return out, nil
}

// divide returns flux/cont with non-finite quotients set to 1.
func divide(flux, cont []float64) []float64 {
	inv := make([]float64, len(cont))
	for i, c := range cont {
		inv[i] = 1 / c
	}
	out := make([]float64, len(flux))
	vecmath.MulBlock(out, flux, inv)
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = 1
		}
	}
	return out
}
