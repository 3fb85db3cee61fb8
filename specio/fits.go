package specio

import (
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/astrogo/fitsio"

	"github.com/cwbudde/algo-stellar/spectrum"
)

// ReadFITS reads a spectrum from a FITS file. With WithColumns naming a
// flux column the selected HDU is read as a binary table; every row is
// concatenated, so layouts storing a whole spectrum as arrays in a single
// row come out one-dimensional. Otherwise the HDU is read as an image.
// Without a wavelength column the axis is computed from CRPIX1, CDELT1 (or
// CD1_1), CRVAL1 and NAXIS1.
func ReadFITS(path string, opts ...Option) (*spectrum.Spectrum, error) {
	cfg := applyOptions(opts)

	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("specio: %s: %w", path, err)
	}
	defer f.Close()

	hdus := f.HDUs()
	if cfg.hdu >= len(hdus) {
		return nil, fmt.Errorf("specio: %s: HDU %d requested, file has %d", path, cfg.hdu, len(hdus))
	}
	hdu := hdus[cfg.hdu]

	var wl, flux, errs []float64
	if cfg.fluxCol != "" {
		tbl, ok := hdu.(*fitsio.Table)
		if !ok {
			return nil, fmt.Errorf("%w: %s: HDU %d is not a table", ErrMissingColumn, path, cfg.hdu)
		}
		cols, err := readColumns(tbl, cfg.waveCol, cfg.fluxCol, cfg.errCol)
		if err != nil {
			return nil, fmt.Errorf("specio: %s: %w", path, err)
		}
		wl, flux, errs = cols[0], cols[1], cols[2]
	} else {
		img, ok := hdu.(fitsio.Image)
		if !ok {
			return nil, fmt.Errorf("%w: %s: HDU %d is a table, name its flux column", ErrMissingColumn, path, cfg.hdu)
		}
		if flux, err = readImage(img); err != nil {
			return nil, fmt.Errorf("specio: %s: %w", path, err)
		}
	}

	if wl == nil {
		ax, err := axisFromHeader(hdu.Header())
		if err != nil {
			return nil, fmt.Errorf("specio: %s: %w", path, err)
		}
		wl = ax.wavelengths()
	}
	cfg.logger.Debug("read fits", "path", path, "hdu", cfg.hdu, "samples", len(flux))
	return finish(path, wl, flux, errs, cfg)
}

// linearAxis is a one-dimensional linear world coordinate system.
type linearAxis struct {
	crpix float64 // reference pixel, 1-based
	cdelt float64 // step per pixel
	crval float64 // value at the reference pixel
	naxis int
}

func (a linearAxis) wavelengths() []float64 {
	out := make([]float64, a.naxis)
	for i := range out {
		out[i] = (float64(i+1)-a.crpix)*a.cdelt + a.crval
	}
	return out
}

func axisFromHeader(hdr *fitsio.Header) (linearAxis, error) {
	var (
		ax  linearAxis
		err error
	)
	if ax.crpix, err = headerFloat(hdr, "CRPIX1"); err != nil {
		return ax, err
	}
	if ax.cdelt, err = headerFloat(hdr, "CDELT1", "CD1_1"); err != nil {
		return ax, err
	}
	if ax.crval, err = headerFloat(hdr, "CRVAL1"); err != nil {
		return ax, err
	}
	n, err := headerFloat(hdr, "NAXIS1")
	if err != nil {
		axes := hdr.Axes()
		if len(axes) == 0 {
			return ax, err
		}
		n = float64(axes[0])
	}
	ax.naxis = int(n)
	return ax, nil
}

// headerFloat returns the value of the first present keyword.
func headerFloat(hdr *fitsio.Header, keys ...string) (float64, error) {
	for _, k := range keys {
		card := hdr.Get(k)
		if card == nil {
			continue
		}
		v, ok := toFloat(reflect.ValueOf(card.Value))
		if !ok {
			return 0, fmt.Errorf("%w: %s=%v is not numeric", ErrMissingHeader, k, card.Value)
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrMissingHeader, keys)
}

// readImage reads image pixels in their stored type and applies BSCALE and
// BZERO.
func readImage(img fitsio.Image) ([]float64, error) {
	hdr := img.Header()

	var (
		out []float64
		err error
	)
	switch bitpix := hdr.Bitpix(); bitpix {
	case 8:
		var v []uint8
		err = img.Read(&v)
		out = flatten(v)
	case 16:
		var v []int16
		err = img.Read(&v)
		out = flatten(v)
	case 32:
		var v []int32
		err = img.Read(&v)
		out = flatten(v)
	case 64:
		var v []int64
		err = img.Read(&v)
		out = flatten(v)
	case -32:
		var v []float32
		err = img.Read(&v)
		out = flatten(v)
	case -64:
		err = img.Read(&out)
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}
	if err != nil {
		return nil, err
	}

	scale, serr := headerFloat(hdr, "BSCALE")
	zero, zerr := headerFloat(hdr, "BZERO")
	if serr == nil || zerr == nil {
		if serr != nil {
			scale = 1
		}
		for i, v := range out {
			out[i] = v*scale + zero
		}
	}
	return out, nil
}

// readColumns reads the named table columns; an empty name yields a nil
// column.
func readColumns(tbl *fitsio.Table, names ...string) ([][]float64, error) {
	for _, name := range names {
		if name != "" && tbl.Index(name) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([][]float64, len(names))
	for rows.Next() {
		row := make(map[string]interface{}, tbl.NumCols())
		if err := rows.Scan(&row); err != nil {
			return nil, err
		}
		for i, name := range names {
			if name == "" {
				continue
			}
			out[i] = append(out[i], flatten(row[name])...)
		}
	}
	return out, rows.Err()
}

// flatten converts a numeric scalar, slice or array (nested to any depth)
// to a flat float64 slice. Nil values are skipped and other non-numeric
// leaves become NaN.
func flatten(v interface{}) []float64 {
	var out []float64
	var walk func(rv reflect.Value)
	walk = func(rv reflect.Value) {
		switch rv.Kind() {
		case reflect.Invalid:
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				walk(rv.Index(i))
			}
		case reflect.Interface, reflect.Pointer:
			if !rv.IsNil() {
				walk(rv.Elem())
			}
		default:
			f, ok := toFloat(rv)
			if !ok {
				f = math.NaN()
			}
			out = append(out, f)
		}
	}
	walk(reflect.ValueOf(v))
	return out
}

func toFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}
