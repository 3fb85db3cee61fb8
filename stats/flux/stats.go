// Package flux computes summary statistics of spectral flux arrays.
//
// Non-finite samples are counted but otherwise ignored, so a spectrum with
// gaps still yields usable moments.
package flux

import (
	"math"
	"sort"
)

// derSNRScale is 1.482602/sqrt(6): the MAD-to-sigma factor divided by the
// noise gain of the second-difference operator used by DERSNR.
const derSNRScale = 0.6052697

// Stats holds flux statistics.
type Stats struct {
	Length    int // total samples, finite or not
	NonFinite int
	Mean      float64
	Variance  float64 // population variance
	StdDev    float64
	RMS       float64
	Max       float64
	MaxPos    int
	Min       float64
	MinPos    int
	Skewness  float64
	Kurtosis  float64 // excess kurtosis
}

func emptyStats(n int) Stats {
	return Stats{
		Length:    n,
		NonFinite: n,
		Max:       math.NaN(),
		MaxPos:    -1,
		Min:       math.NaN(),
		MinPos:    -1,
	}
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments.
func Calculate(flux []float64) Stats {
	s := NewStreamingStats()
	s.Update(flux)
	return s.Result()
}

// RMS returns the root-mean-square of the finite samples.
func RMS(flux []float64) float64 {
	var sumSq float64
	n := 0
	for _, x := range flux {
		if !finite(x) {
			continue
		}
		sumSq += x * x
		n++
	}
	if n == 0 {
		return 0
	}

	return math.Sqrt(sumSq / float64(n))
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of the finite samples.
func Moments(flux []float64) (mean, variance, skewness, kurtosis float64) {
	s := Calculate(flux)
	return s.Mean, s.Variance, s.Skewness, s.Kurtosis
}

// Median returns the median of the finite samples, or NaN if there are none.
func Median(flux []float64) float64 {
	vals := make([]float64, 0, len(flux))
	for _, x := range flux {
		if finite(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)

	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return 0.5 * (vals[mid-1] + vals[mid])
}

// DERSNR estimates the signal-to-noise ratio of a spectrum from the flux alone
// (Stoehr et al. 2008). The signal is the median flux. The noise is derived
// from the median absolute second difference taken two pixels apart, which
// cancels smooth structure and lines wider than a few pixels.
//
// Returns 0 when fewer than five finite samples are available and +Inf for a
// noiseless spectrum with positive median.
func DERSNR(flux []float64) float64 {
	vals := make([]float64, 0, len(flux))
	for _, x := range flux {
		if finite(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) < 5 {
		return 0
	}

	signal := Median(vals)
	diffs := make([]float64, 0, len(vals)-4)
	for i := 2; i < len(vals)-2; i++ {
		diffs = append(diffs, math.Abs(2*vals[i]-vals[i-2]-vals[i+2]))
	}
	noise := derSNRScale * Median(diffs)

	if noise == 0 {
		if signal > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return signal / noise
}

// Residual returns the statistics of a-b over the samples both have.
func Residual(a, b []float64) Stats {
	n := min(len(a), len(b))
	d := make([]float64, n)
	for i := range d {
		d[i] = a[i] - b[i]
	}
	return Calculate(d)
}

// StreamingStats accumulates flux statistics incrementally across blocks.
// It produces results identical to [Calculate] over the concatenated input.
type StreamingStats struct {
	n       int // finite samples
	total   int
	mean    float64
	m2      float64
	m3      float64
	m4      float64
	sumSq   float64
	maxVal  float64
	maxPos  int
	minVal  float64
	minPos  int
	hasData bool
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		pos := s.total
		s.total++
		if !finite(x) {
			continue
		}

		s.n++
		ni := float64(s.n)

		delta := x - s.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(s.n-1)

		// M4 before M3 before M2.
		s.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
		s.m3 += term1*deltaN*(float64(s.n-1)-1) - 3*deltaN*s.m2
		s.m2 += term1
		s.mean += deltaN

		s.sumSq += x * x

		if !s.hasData {
			s.maxVal, s.maxPos = x, pos
			s.minVal, s.minPos = x, pos
			s.hasData = true
			continue
		}
		if x > s.maxVal {
			s.maxVal, s.maxPos = x, pos
		}
		if x < s.minVal {
			s.minVal, s.minPos = x, pos
		}
	}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats(s.total)
	}

	nf := float64(s.n)
	variance := s.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (s.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:    s.total,
		NonFinite: s.total - s.n,
		Mean:      s.mean,
		Variance:  variance,
		StdDev:    math.Sqrt(variance),
		RMS:       math.Sqrt(s.sumSq / nf),
		Max:       s.maxVal,
		MaxPos:    s.maxPos,
		Min:       s.minVal,
		MinPos:    s.minPos,
		Skewness:  skewness,
		Kurtosis:  kurtosis,
	}
}

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
