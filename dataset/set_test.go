package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-stellar/internal/testutil"
	"github.com/cwbudde/algo-stellar/spectrum"
)

func labelled(t *testing.T, l spectrum.Labels, flux []float64) *spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.New(testutil.Linspace(500, 501, len(flux)), flux, nil, spectrum.WithLabels(l))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestSetMatrix(t *testing.T) {
	var set Set
	if err := set.Add("a", labelled(t, spectrum.Labels{Teff: "5000", Logg: "4.5", MH: "0.0"}, []float64{1, 2, 3})); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := set.Add("b", labelled(t, spectrum.Labels{Teff: "6000", Logg: "4.0", MH: "-1"}, []float64{4, 5, 6})); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	m, err := set.Matrix()
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	if r, c := m.Dims(); r != 2 || c != 3 {
		t.Fatalf("Matrix().Dims() = %d, %d", r, c)
	}
	if m.At(1, 2) != 6 {
		t.Fatalf("Matrix().At(1, 2) = %v, want 6", m.At(1, 2))
	}

	lm, err := set.LabelMatrix()
	if err != nil {
		t.Fatalf("LabelMatrix() error = %v", err)
	}
	if lm.At(1, 0) != 6000 || lm.At(1, 2) != -1 {
		t.Fatalf("LabelMatrix() row 1 = %v %v %v", lm.At(1, 0), lm.At(1, 1), lm.At(1, 2))
	}

	if err := set.Add("c", labelled(t, spectrum.Labels{Teff: "5000", Logg: "4.5", MH: "0.0"}, []float64{1, 2})); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	_, err = set.Matrix()
	testutil.RequireErrorIs(t, err, spectrum.ErrArrayLengthMismatch)

	var empty Set
	_, err = empty.Matrix()
	testutil.RequireErrorIs(t, err, spectrum.ErrEmpty)
}

func TestSetAddRequiresLabels(t *testing.T) {
	s, err := spectrum.New([]float64{1, 2}, []float64{1, 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var set Set
	if err := set.Add("x", s); err == nil {
		t.Fatal("Add() of an unlabelled spectrum should fail")
	}
}

func TestBuildFromDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"5000_4.5_0.0.tsv":           "500 0.9\n501 0.8\n",
		"6000_4.0_-0.5_10_100_0.tsv": "500 0.7\n501 0.6\n",
		"._5000_4.5_0.0.tsv":         "garbage",
		"notes.txt":                  "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	set, err := BuildFromDir(dir)
	if err != nil {
		t.Fatalf("BuildFromDir() error = %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if set.Names[0] != "5000_4.5_0.0" || set.Labels[1] != [3]float64{6000, 4.0, -0.5} {
		t.Fatalf("set = %+v", set)
	}
	testutil.RequireSliceNearlyEqual(t, set.Fluxes[1], []float64{0.7, 0.6}, 0)
}
