package specio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cwbudde/algo-stellar/spectrum"
)

// ReadTSV reads a spectrum stored as whitespace-separated columns of
// wavelength, flux and, with WithErrorColumn, flux error. Blank lines and
// lines starting with '#' are skipped.
func ReadTSV(path string, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}
	defer f.Close()

	wl, flux, errs, err := parseColumns(f, cfg.hasErrors)
	if err != nil {
		return nil, fmt.Errorf("specio: %s: %w", path, err)
	}
	cfg.logger.Debug("read tsv", "path", path, "samples", len(wl))
	return finish(path, wl, flux, errs, cfg)
}

func parseColumns(r io.Reader, hasErrors bool) (wl, flux, errs []float64, err error) {
	need := 2
	if hasErrors {
		need = 3
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < need {
			return nil, nil, nil, fmt.Errorf("%w: line %d has %d columns, need %d", ErrMissingColumn, line, len(fields), need)
		}
		var row [3]float64
		for i := 0; i < need; i++ {
			v, perr := strconv.ParseFloat(fields[i], 64)
			if perr != nil {
				return nil, nil, nil, fmt.Errorf("%w: line %d: %w", ErrBadRow, line, perr)
			}
			row[i] = v
		}
		wl = append(wl, row[0])
		flux = append(flux, row[1])
		if hasErrors {
			errs = append(errs, row[2])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, err
	}
	return wl, flux, errs, nil
}

// WriteTSV writes s to path, replacing any existing file.
func WriteTSV(path string, s *spectrum.Spectrum) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("specio: %w", err)
	}
	if err := writeRows(f, s); err != nil {
		f.Close()
		return fmt.Errorf("specio: %s: %w", path, err)
	}
	return f.Close()
}

func writeRows(w io.Writer, s *spectrum.Spectrum) error {
	bw := bufio.NewWriter(w)
	wl, flux := s.Wavelengths(), s.Fluxes()
	errs := s.Errors()
	for i := range wl {
		var err error
		if errs != nil {
			_, err = fmt.Fprintf(bw, "%.6f\t%.3f\t%.3f\n", wl[i], flux[i], errs[i])
		} else {
			_, err = fmt.Fprintf(bw, "%.6f\t%.3f\n", wl[i], flux[i])
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TSVWriter appends spectra to files in Dir named after their labels. With
// Params the applied perturbations are part of the name. It is safe for
// concurrent use and satisfies the augmentation sink interface.
type TSVWriter struct {
	Dir    string
	Params bool

	mu sync.Mutex
}

// NewTSVWriter returns a writer into dir that names files with their
// perturbation parameters.
func NewTSVWriter(dir string) *TSVWriter {
	return &TSVWriter{Dir: dir, Params: true}
}

// Path returns the file s would be written to.
func (w *TSVWriter) Path(s *spectrum.Spectrum) (string, error) {
	if s.Labels().IsZero() {
		return "", fmt.Errorf("%w: spectrum has no labels", ErrBadFilename)
	}
	return filepath.Join(w.Dir, FormatName(s.Labels(), s.State(), w.Params)), nil
}

// Write appends s to its file, creating Dir if needed.
func (w *TSVWriter) Write(s *spectrum.Spectrum) error {
	path, err := w.Path(s)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("specio: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("specio: %w", err)
	}
	if err := writeRows(f, s); err != nil {
		f.Close()
		return fmt.Errorf("specio: %s: %w", path, err)
	}
	return f.Close()
}

// Emit writes s unless ctx is already done.
func (w *TSVWriter) Emit(ctx context.Context, s *spectrum.Spectrum) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.Write(s)
}
