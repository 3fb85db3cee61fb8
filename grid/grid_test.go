package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-stellar/internal/testutil"
	"github.com/cwbudde/algo-stellar/spectrum"
)

func mustSpectrum(t *testing.T, wl, flux, errs []float64) *spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.New(wl, flux, errs, spectrum.WithLabels(spectrum.Labels{Teff: "6000", Logg: "4.0", MH: "0.0"}))
	if err != nil {
		t.Fatalf("spectrum.New() error = %v", err)
	}
	return s
}

func TestResampleSize(t *testing.T) {
	wl := testutil.Linspace(500, 501, 1000)
	flux := testutil.Absorption(wl, testutil.Line{Center: 500.5, Depth: 0.5, Sigma: 0.05})
	s := mustSpectrum(t, wl, flux, testutil.DC(0.01, 1000))

	out, err := Resample(s, DefaultPoints)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if out.Len() != DefaultPoints {
		t.Fatalf("Len() = %d, want %d", out.Len(), DefaultPoints)
	}
	lo, hi := out.Bounds()
	if math.Abs(lo-500) > 1e-12 || math.Abs(hi-501) > 1e-12 {
		t.Fatalf("Bounds() = [%v, %v], want [500, 501]", lo, hi)
	}
	if out.HasErrors() {
		t.Fatal("errors should be dropped")
	}
	if out.Labels() != s.Labels() {
		t.Fatal("labels not carried")
	}

	// Interpolation between the original samples stays within their range.
	got := out.Fluxes()
	testutil.RequireFinite(t, got)
	for i, f := range got {
		if f < 0.49 || f > 1+1e-12 {
			t.Fatalf("flux[%d] = %v out of range", i, f)
		}
	}
}

func TestResampleLinearIsExact(t *testing.T) {
	wl := testutil.Linspace(400, 410, 11)
	flux := testutil.Polynomial(wl, 400, 0.5, 0.05)
	out, err := Resample(mustSpectrum(t, wl, flux, nil), 101)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Fluxes(), testutil.Polynomial(out.Wavelengths(), 400, 0.5, 0.05), 1e-12)
}

func TestResampleAngstrom(t *testing.T) {
	wl := testutil.Linspace(5000, 5010, 101)
	out, err := Resample(mustSpectrum(t, wl, testutil.Ones(101), nil), 50)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	lo, hi := out.Bounds()
	if math.Abs(lo-500) > 1e-9 || math.Abs(hi-501) > 1e-9 {
		t.Fatalf("Bounds() = [%v, %v], want nm", lo, hi)
	}
}

func TestResampleNaN(t *testing.T) {
	wl := testutil.Linspace(500, 501, 11)
	flux := testutil.DC(0.5, 11)
	flux[5] = math.NaN()
	s := mustSpectrum(t, wl, flux, nil)

	out, err := Resample(s, 11)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if got := out.Flux(5); got != 1 {
		t.Fatalf("NaN not replaced: %v", got)
	}

	kept, err := Resample(s, 11, WithReplaceNaN(false))
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if !math.IsNaN(kept.Flux(5)) {
		t.Fatalf("NaN replaced although disabled: %v", kept.Flux(5))
	}
}

func TestResampleWindow(t *testing.T) {
	wl := testutil.Linspace(400, 500, 101) // 1 nm steps
	s := mustSpectrum(t, wl, testutil.Ones(101), nil)

	out, err := Resample(s, 20, WithWindow(420.2, 450.4))
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	lo, hi := out.Bounds()
	// Nearest indices are 20 and 50; the upper one is excluded.
	if lo != 420 || math.Abs(hi-449) > 1e-12 {
		t.Fatalf("Bounds() = [%v, %v], want [420, 449]", lo, hi)
	}

	_, err = Resample(s, 20, WithWindow(430, 430.2))
	if !errors.Is(err, ErrEmptyWindow) {
		t.Fatalf("expected ErrEmptyWindow, got %v", err)
	}
}

func TestResampleKeepsState(t *testing.T) {
	wl := testutil.Linspace(500, 501, 10)
	s, err := spectrum.New(wl, testutil.Ones(10), nil, spectrum.WithState(spectrum.State{VsiniApplied: true, Vsini: 40}))
	if err != nil {
		t.Fatalf("spectrum.New() error = %v", err)
	}
	b := s.Edit().SetContinuum(spectrum.Continuum{Curve: testutil.Ones(10)})
	withFit, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out, err := Resample(withFit, 30)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if st := out.State(); !st.VsiniApplied || st.Vsini != 40 {
		t.Fatalf("state lost: %+v", st)
	}
	if _, ok := out.Continuum(); ok {
		t.Fatal("stale continuum carried over")
	}
}

func TestResampleErrors(t *testing.T) {
	s := mustSpectrum(t, []float64{1, 2}, []float64{1, 1}, nil)
	if _, err := Resample(s, 1); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
	single := mustSpectrum(t, []float64{1}, []float64{1}, nil)
	if _, err := Resample(single, 10); !errors.Is(err, spectrum.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
