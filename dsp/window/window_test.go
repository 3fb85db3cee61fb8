package window

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-stellar/internal/testutil"
)

func TestGenerate(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeTriangle, TypeHann, TypeGauss} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 65)
			if len(w) != 65 {
				t.Fatalf("len=%d, want 65", len(w))
			}
			testutil.RequireFinite(t, w)

			for i := range w {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("coefficient %d not symmetric: %v vs %v", i, w[i], w[len(w)-1-i])
				}
			}
			if math.Abs(w[32]-1) > 1e-12 {
				t.Fatalf("centre = %v, want 1", w[32])
			}
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
}

func TestApplyCoefficientsMismatch(t *testing.T) {
	if _, err := ApplyCoefficients([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	out, err := ApplyCoefficients([]float64{2, 2}, []float64{0.5, 1})
	if err != nil {
		t.Fatalf("ApplyCoefficients() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{1, 2}, 1e-15)
}

func TestSmoothConstantIsFixedPoint(t *testing.T) {
	data := testutil.DC(0.8, 500)

	for _, typ := range []Type{TypeRectangular, TypeTriangle, TypeHann} {
		for _, width := range []int{5, 50, 101} {
			got, err := Smooth(data, typ, width)
			if err != nil {
				t.Fatalf("%s/%d: Smooth() error = %v", typ, width, err)
			}
			testutil.RequireSliceNearlyEqual(t, got, data, 1e-9)
		}
	}
}

func TestSmoothSuppressesNoise(t *testing.T) {
	noise := testutil.DeterministicNoise(7, 0.1, 2000)
	data := make([]float64, len(noise))
	for i := range data {
		data[i] = 1 + noise[i]
	}

	got, err := Smooth(data, TypeRectangular, 50)
	if err != nil {
		t.Fatalf("Smooth() error = %v", err)
	}

	rawDev, smoothDev := 0.0, 0.0
	for i := 100; i < len(data)-100; i++ {
		rawDev += (data[i] - 1) * (data[i] - 1)
		smoothDev += (got[i] - 1) * (got[i] - 1)
	}
	if smoothDev*10 > rawDev {
		t.Fatalf("smoothing did not reduce variance enough: raw=%v smooth=%v", rawDev, smoothDev)
	}
}

func TestSmoothErrors(t *testing.T) {
	if _, err := Smooth([]float64{1, 2}, TypeRectangular, 0); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := Smooth(nil, TypeRectangular, 3); err == nil {
		t.Fatal("expected error for empty data")
	}
	if _, err := Smooth([]float64{1, 2, 3}, TypeHann, 2); err == nil {
		t.Fatal("expected error for zero-weight kernel")
	}
}
