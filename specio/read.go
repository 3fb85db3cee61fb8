package specio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-stellar/grid"
	"github.com/cwbudde/algo-stellar/spectrum"
)

// Read dispatches on the file extension: .fits and .fit go to ReadFITS,
// everything else to ReadTSV.
func Read(path string, opts ...Option) (*spectrum.Spectrum, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fits", ".fit":
		return ReadFITS(path, opts...)
	default:
		return ReadTSV(path, opts...)
	}
}

// Reader returns Read bound to opts.
func Reader(opts ...Option) func(string) (*spectrum.Spectrum, error) {
	return func(path string) (*spectrum.Spectrum, error) {
		return Read(path, opts...)
	}
}

// finish applies the steps shared by all readers: unit conversion, range
// cut and filename labels.
func finish(path string, wl, flux, errs []float64, cfg config) (*spectrum.Spectrum, error) {
	if len(wl) == 0 {
		return nil, fmt.Errorf("specio: %s: %w", path, spectrum.ErrEmpty)
	}
	if len(flux) != len(wl) || (errs != nil && len(errs) != len(wl)) {
		return nil, fmt.Errorf("specio: %s: %w: %d wavelengths, %d fluxes, %d errors",
			path, spectrum.ErrArrayLengthMismatch, len(wl), len(flux), len(errs))
	}

	wl, converted := grid.ToNanometres(wl)
	if converted {
		cfg.logger.Debug("converted wavelengths to nm", "path", path)
	}

	if cfg.ranged {
		left, right := grid.Window(wl, cfg.lo, cfg.hi)
		if right <= left {
			return nil, fmt.Errorf("specio: %s: %w: [%g, %g]", path, grid.ErrEmptyWindow, cfg.lo, cfg.hi)
		}
		wl, flux = wl[left:right], flux[left:right]
		if errs != nil {
			errs = errs[left:right]
		}
	}

	var opts []spectrum.Option
	if cfg.labels {
		labels, st, err := ParseFilename(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, spectrum.WithLabels(labels), spectrum.WithState(st))
	}

	s, err := spectrum.New(wl, flux, errs, opts...)
	if err != nil {
		return nil, fmt.Errorf("specio: %s: %w", path, err)
	}
	return s, nil
}

// ListSpectra returns the .fits, .fit and .tsv files of dir in name order.
// AppleDouble "._" files are skipped.
func ListSpectra(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "._") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".fits", ".fit", ".tsv":
			out = append(out, filepath.Join(dir, name))
		}
	}
	sort.Strings(out)
	return out, nil
}
