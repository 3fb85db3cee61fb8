package specio

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/cwbudde/algo-stellar/internal/testutil"
	"github.com/cwbudde/algo-stellar/spectrum"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n
}

func TestReadTSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "5000_4.5_0.0.tsv",
		"# wavelength flux error\n\n500.0\t0.9\t0.01\n500.5 0.8 0.02\n501.0\t1.0\t0.03\n")

	s, err := ReadTSV(path, WithErrorColumn(), WithLabels())
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, s.Wavelengths(), []float64{500, 500.5, 501}, 0)
	testutil.RequireSliceNearlyEqual(t, s.Fluxes(), []float64{0.9, 0.8, 1.0}, 0)
	testutil.RequireSliceNearlyEqual(t, s.Errors(), []float64{0.01, 0.02, 0.03}, 0)
	if s.Labels().Teff != "5000" {
		t.Fatalf("labels = %+v", s.Labels())
	}

	plain, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("ReadTSV(plain) error = %v", err)
	}
	if plain.HasErrors() || !plain.Labels().IsZero() {
		t.Fatal("errors and labels should only be read on request")
	}
}

func TestReadTSVConvertsAngstrom(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.tsv", "5000 1\n5001 1\n5002 1\n")
	s, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, s.Wavelengths(), []float64{500, 500.1, 500.2}, 1e-12)
}

func TestReadTSVRange(t *testing.T) {
	var b strings.Builder
	for _, w := range testutil.Linspace(400, 410, 11) {
		b.WriteString(strconv.FormatFloat(w, 'f', -1, 64) + "\t1\n")
	}
	path := writeFile(t, t.TempDir(), "r.tsv", b.String())

	s, err := ReadTSV(path, WithRange(402.2, 404.9))
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, s.Wavelengths(), []float64{402, 403, 404}, 1e-12)

	if _, err := ReadTSV(path, WithRange(405, 405)); err == nil {
		t.Fatal("empty range should fail")
	}
}

func TestReadTSVErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		opts    []Option
		wantErr error
	}{
		{name: "one column", content: "500\n501\n", wantErr: ErrMissingColumn},
		{name: "no error column", content: "500 1\n501 1\n", opts: []Option{WithErrorColumn()}, wantErr: ErrMissingColumn},
		{name: "bad number", content: "500 1\n501 x\n", wantErr: ErrBadRow},
		{name: "empty", content: "# nothing\n", wantErr: spectrum.ErrEmpty},
		{name: "unsorted", content: "501 1\n500 1\n", wantErr: spectrum.ErrNotIncreasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".tsv", tt.content)
			_, err := ReadTSV(path, tt.opts...)
			testutil.RequireErrorIs(t, err, tt.wantErr)
		})
	}

	if _, err := ReadTSV(filepath.Join(dir, "missing.tsv")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestTSVRoundTrip(t *testing.T) {
	wl := []float64{500.1234567, 500.2234567, 500.3234567}
	flux := []float64{0.98765, 0.5, 1.00049}
	errs := []float64{0.0123, 0.0456, 0.0789}
	s, err := spectrum.New(wl, flux, errs)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.tsv")
	if err := WriteTSV(path, s); err != nil {
		t.Fatalf("WriteTSV() error = %v", err)
	}
	back, err := ReadTSV(path, WithErrorColumn())
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, back.Wavelengths(), wl, 5e-7)
	testutil.RequireSliceNearlyEqual(t, back.Fluxes(), flux, 5e-4)
	testutil.RequireSliceNearlyEqual(t, back.Errors(), errs, 5e-4)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if first := strings.SplitN(string(raw), "\n", 2)[0]; first != "500.123457\t0.988\t0.012" {
		t.Fatalf("first row = %q", first)
	}
}

func TestTSVWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewTSVWriter(dir)

	labels := spectrum.Labels{Teff: "5000", Logg: "4.5", MH: "0.0"}
	st := spectrum.State{VsiniApplied: true, Vsini: 25, NoiseApplied: true, SNR: 100}
	s, err := spectrum.New(testutil.Linspace(500, 501, 11), testutil.Ones(11), nil,
		spectrum.WithLabels(labels), spectrum.WithState(st))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Emit(context.Background(), s); err != nil {
				t.Errorf("Emit() error = %v", err)
			}
		}()
	}
	wg.Wait()

	path := filepath.Join(dir, "5000_4.5_0.0_25_100_0.tsv")
	if got := countLines(t, path); got != 4*11 {
		t.Fatalf("lines = %d, want %d (appends)", got, 4*11)
	}

	unlabelled, err := spectrum.New([]float64{1, 2}, []float64{1, 1}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	testutil.RequireErrorIs(t, w.Write(unlabelled), ErrBadFilename)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Emit(ctx, s); err == nil {
		t.Fatal("Emit() on cancelled context should fail")
	}
}
