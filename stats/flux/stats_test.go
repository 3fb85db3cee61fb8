package flux

import (
	"math"
	"strconv"
	"testing"

	"github.com/cwbudde/algo-stellar/dsp/signal"
	"github.com/cwbudde/algo-stellar/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= tol
}

func TestCalculate_Constant(t *testing.T) {
	s := Calculate(testutil.DC(0.8, 1000))

	if s.Length != 1000 || s.NonFinite != 0 {
		t.Fatalf("Length=%d NonFinite=%d", s.Length, s.NonFinite)
	}
	if !almostEqual(s.Mean, 0.8, tolerance) {
		t.Errorf("Mean: got %g, want 0.8", s.Mean)
	}
	if !almostEqual(s.RMS, 0.8, tolerance) {
		t.Errorf("RMS: got %g, want 0.8", s.RMS)
	}
	if s.Variance != 0 || s.Skewness != 0 || s.Kurtosis != 0 {
		t.Errorf("higher moments of constant: %+v", s)
	}
}

func TestCalculate_SkipsNonFinite(t *testing.T) {
	s := Calculate([]float64{math.NaN(), 1, math.Inf(1), 3, 2})

	if s.Length != 5 || s.NonFinite != 2 {
		t.Fatalf("Length=%d NonFinite=%d", s.Length, s.NonFinite)
	}
	if !almostEqual(s.Mean, 2, tolerance) {
		t.Errorf("Mean: got %g, want 2", s.Mean)
	}
	if s.Max != 3 || s.MaxPos != 3 {
		t.Errorf("Max=%v at %d, want 3 at 3", s.Max, s.MaxPos)
	}
	if s.Min != 1 || s.MinPos != 1 {
		t.Errorf("Min=%v at %d, want 1 at 1", s.Min, s.MinPos)
	}
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || s.MaxPos != -1 || s.MinPos != -1 {
		t.Fatalf("unexpected empty stats: %+v", s)
	}
	if !math.IsNaN(s.Max) || !math.IsNaN(s.Min) {
		t.Fatalf("expected NaN extrema, got %v %v", s.Max, s.Min)
	}

	all := Calculate([]float64{math.NaN(), math.NaN()})
	if all.Length != 2 || all.NonFinite != 2 {
		t.Fatalf("all-NaN stats: %+v", all)
	}
}

func TestMoments(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		mean     float64
		variance float64
		skewness float64
	}{
		{name: "symmetric", in: []float64{1, 2, 3}, mean: 2, variance: 2.0 / 3, skewness: 0},
		{name: "pair", in: []float64{-1, 1}, mean: 0, variance: 1, skewness: 0},
		{name: "single", in: []float64{5}, mean: 5, variance: 0, skewness: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, variance, skewness, _ := Moments(tt.in)
			if !almostEqual(mean, tt.mean, tolerance) {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if !almostEqual(variance, tt.variance, tolerance) {
				t.Errorf("variance = %v, want %v", variance, tt.variance)
			}
			if !almostEqual(skewness, tt.skewness, tolerance) {
				t.Errorf("skewness = %v, want %v", skewness, tt.skewness)
			}
		})
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, -4, math.NaN()}); !almostEqual(got, math.Sqrt(12.5), tolerance) {
		t.Fatalf("RMS = %v", got)
	}
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) != 0")
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{in: []float64{3, 1, 2}, want: 2},
		{in: []float64{4, 1, 3, 2}, want: 2.5},
		{in: []float64{math.NaN(), 7}, want: 7},
	}
	for _, tt := range tests {
		if got := Median(tt.in); got != tt.want {
			t.Errorf("Median(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !math.IsNaN(Median(nil)) {
		t.Error("Median(nil) should be NaN")
	}
}

func TestDERSNR(t *testing.T) {
	for _, snr := range []float64{50, 150} {
		t.Run(strconv.Itoa(int(snr)), func(t *testing.T) {
			g := signal.NewGenerator(signal.WithSeed(uint64(snr)))
			noise, err := g.GaussianNoise(1/snr, 20000)
			if err != nil {
				t.Fatalf("GaussianNoise() error = %v", err)
			}
			f := testutil.Ones(len(noise))
			for i := range f {
				f[i] += noise[i]
			}

			got := DERSNR(f)
			if math.Abs(got-snr)/snr > 0.05 {
				t.Fatalf("DERSNR = %v, want about %v", got, snr)
			}
		})
	}
}

func TestDERSNR_EdgeCases(t *testing.T) {
	if got := DERSNR([]float64{1, 1, 1}); got != 0 {
		t.Errorf("short input: got %v, want 0", got)
	}
	if got := DERSNR(testutil.Ones(20)); !math.IsInf(got, 1) {
		t.Errorf("noiseless input: got %v, want +Inf", got)
	}
}

func TestResidual(t *testing.T) {
	r := Residual([]float64{1, 2, 3, 4}, []float64{1, 1, 1})
	if r.Length != 3 {
		t.Fatalf("Length = %d, want 3", r.Length)
	}
	if !almostEqual(r.Mean, 1, tolerance) || r.Max != 2 {
		t.Fatalf("unexpected residual stats: %+v", r)
	}
}

func TestStreamingStats_MatchesCalculate(t *testing.T) {
	in := testutil.Absorption(testutil.Linspace(500, 501, 777),
		testutil.Line{Center: 500.4, Depth: 0.5, Sigma: 0.02})
	in[10] = math.NaN()

	want := Calculate(in)
	for _, block := range []int{1, 7, 64, 1000} {
		t.Run(strconv.Itoa(block), func(t *testing.T) {
			s := NewStreamingStats()
			for start := 0; start < len(in); start += block {
				s.Update(in[start:min(start+block, len(in))])
			}
			got := s.Result()
			if got != want {
				t.Fatalf("streaming result differs:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestStreamingStats_Reset(t *testing.T) {
	s := NewStreamingStats()
	s.Update([]float64{1, 2, 3})
	s.Reset()
	s.Update([]float64{4})

	got := s.Result()
	if got.Length != 1 || got.Mean != 4 || got.MaxPos != 0 {
		t.Fatalf("after reset: %+v", got)
	}
}
