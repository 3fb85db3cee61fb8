package spectrum

import (
	"fmt"
	"strconv"
)

// Labels are the stellar parameters a spectrum was named with. They are kept
// as the original strings so that output filenames reproduce input names
// exactly ("5000" stays "5000", not "5000.000").
type Labels struct {
	Teff string // effective temperature, K
	Logg string // surface gravity, log10(cgs)
	MH   string // metallicity [M/H], dex
}

// IsZero reports whether no label is set.
func (l Labels) IsZero() bool {
	return l == Labels{}
}

// String joins the labels as teff_logg_mh.
func (l Labels) String() string {
	return l.Teff + "_" + l.Logg + "_" + l.MH
}

// Values parses the labels as (teff, logg, mh).
func (l Labels) Values() ([3]float64, error) {
	var out [3]float64
	for i, f := range []struct {
		name, val string
	}{{"teff", l.Teff}, {"logg", l.Logg}, {"mh", l.MH}} {
		v, err := strconv.ParseFloat(f.val, 64)
		if err != nil {
			return out, fmt.Errorf("spectrum: label %s=%q: %w", f.name, f.val, err)
		}
		out[i] = v
	}
	return out, nil
}
