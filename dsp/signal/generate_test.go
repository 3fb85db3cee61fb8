package signal

import (
	"math"
	"testing"
)

func TestGaussianNoiseDeterministic(t *testing.T) {
	g1 := NewGenerator(WithSeed(42))
	g2 := NewGenerator(WithSeed(42))

	n1, err := g1.GaussianNoise(1, 16)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}
	n2, err := g2.GaussianNoise(1, 16)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
	}
}

func TestGaussianNoiseMoments(t *testing.T) {
	const sigma = 0.02
	g := NewGenerator(WithSeed(7))
	n, err := g.GaussianNoise(sigma, 20000)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}

	mean := 0.0
	for _, v := range n {
		mean += v
	}
	mean /= float64(len(n))

	variance := 0.0
	for _, v := range n {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(n)-1))

	if math.Abs(mean) > 5*sigma/math.Sqrt(float64(len(n))) {
		t.Fatalf("mean = %v, want near 0", mean)
	}
	if math.Abs(std-sigma)/sigma > 0.05 {
		t.Fatalf("std = %v, want %v", std, sigma)
	}
}

func TestGaussianNoiseZeroSigma(t *testing.T) {
	n, err := NewGenerator().GaussianNoise(0, 4)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}
	for i, v := range n {
		if v != 0 {
			t.Fatalf("n[%d] = %v, want 0", i, v)
		}
	}
}

func TestGaussianNoiseErrors(t *testing.T) {
	g := NewGenerator()
	if _, err := g.GaussianNoise(1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := g.GaussianNoise(-1, 4); err == nil {
		t.Fatal("expected error for negative sigma")
	}
	if _, err := g.GaussianNoise(math.NaN(), 4); err == nil {
		t.Fatal("expected error for NaN sigma")
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.GaussianNoise(1, 8)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.GaussianNoise(1, 8)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}

	g.SetSeed(99)
	c, _ := g.GaussianNoise(1, 8)
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("reseeding did not restart stream at %d", i)
		}
	}
}

func TestUniformInts(t *testing.T) {
	g := NewGenerator(WithSeed(3))
	vals, err := g.UniformInts(50, 250, 500)
	if err != nil {
		t.Fatalf("UniformInts() error = %v", err)
	}
	if len(vals) != 500 {
		t.Fatalf("len = %d, want 500", len(vals))
	}
	for i, v := range vals {
		if v < 50 || v > 250 {
			t.Fatalf("vals[%d] = %d out of range", i, v)
		}
	}

	if _, err := g.UniformInts(5, 4, 1); err == nil {
		t.Fatal("expected error for empty range")
	}
	one, err := g.UniformInts(7, 7, 3)
	if err != nil {
		t.Fatalf("UniformInts() error = %v", err)
	}
	for _, v := range one {
		if v != 7 {
			t.Fatalf("degenerate range produced %d", v)
		}
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}
}

func TestNormalizeErrors(t *testing.T) {
	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Fatal("expected error for negative peak")
	}
	out, err := Normalize([]float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[0] != 0 || out[1] != 0 {
		t.Fatalf("all-zero input changed: %v", out)
	}
}
