package specio

import (
	"path/filepath"
	"testing"
)

func TestListSpectra(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.tsv", "a.FITS", "c.fit", "._a.tsv", "readme.md"} {
		writeFile(t, dir, name, "")
	}

	got, err := ListSpectra(dir)
	if err != nil {
		t.Fatalf("ListSpectra() error = %v", err)
	}
	want := []string{"a.FITS", "b.tsv", "c.fit"}
	if len(got) != len(want) {
		t.Fatalf("ListSpectra() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != filepath.Join(dir, want[i]) {
			t.Fatalf("ListSpectra()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := ListSpectra(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("ListSpectra() on a missing directory should fail")
	}
}

func TestReaderDispatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "5000_4.5_0.0.tsv", "500 1\n501 0.5\n")
	s, err := Reader(WithLabels())(path)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	if s.Len() != 2 || s.Labels().Teff != "5000" {
		t.Fatalf("Reader() = %v", s)
	}
}
