package testutil

import (
	"math"
	"math/rand"
)

// Line describes a Gaussian absorption line for synthetic spectra.
type Line struct {
	Center float64 // wavelength of the line core
	Depth  float64 // fractional depth in [0, 1]
	Sigma  float64 // Gaussian width in wavelength units
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Absorption returns a unit-continuum flux with the given lines imprinted.
func Absorption(wavelengths []float64, lines ...Line) []float64 {
	out := Ones(len(wavelengths))
	for i, w := range wavelengths {
		for _, l := range lines {
			d := (w - l.Center) / l.Sigma
			out[i] -= l.Depth * math.Exp(-0.5*d*d)
		}
	}
	return out
}

// Polynomial evaluates c[0] + c[1]*(x-x0) + c[2]*(x-x0)^2 + ... at every x.
func Polynomial(xs []float64, x0 float64, c ...float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		acc := 0.0
		for k := len(c) - 1; k >= 0; k-- {
			acc = acc*(x-x0) + c[k]
		}
		out[i] = acc
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}
