package specio

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-stellar/spectrum"
)

const (
	labelFields    = 3 // teff_logg_mh
	perturbFields  = 6 // teff_logg_mh_vsini_snr_radvel
	extTSV         = ".tsv"
	fieldSeparator = "_"
)

var knownExts = []string{".tsv", ".fits", ".fit"}

// TrimExt removes a known spectrum extension from name. Label values
// contain dots, so filepath.Ext cannot be used on bare stems.
func TrimExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range knownExts {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// ParseFilename extracts labels from a name of the form teff_logg_mh with
// any directory and extension. When the name has exactly six fields the
// trailing vsini, snr and radvel are returned as the applied state; a zero
// or unparsable value leaves that perturbation unmarked. Longer names, such
// as synthetic grid files with extra model parameters, only yield labels.
func ParseFilename(path string) (spectrum.Labels, spectrum.State, error) {
	stem := TrimExt(filepath.Base(path))
	fields := strings.Split(stem, fieldSeparator)
	if len(fields) < labelFields {
		return spectrum.Labels{}, spectrum.State{}, fmt.Errorf("%w: %q", ErrBadFilename, stem)
	}

	labels := spectrum.Labels{Teff: fields[0], Logg: fields[1], MH: fields[2]}
	if _, err := labels.Values(); err != nil {
		return spectrum.Labels{}, spectrum.State{}, fmt.Errorf("%w: %q: %w", ErrBadFilename, stem, err)
	}

	var st spectrum.State
	if len(fields) == perturbFields {
		if v, ok := parseParam(fields[3]); ok {
			st.VsiniApplied, st.Vsini = true, v
		}
		if v, ok := parseParam(fields[4]); ok {
			st.NoiseApplied, st.SNR = true, v
		}
		if v, ok := parseParam(fields[5]); ok {
			st.RadialVelocityApplied, st.RadialVelocity = true, v
		}
	}
	return labels, st, nil
}

func parseParam(field string) (float64, bool) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

// FormatName builds the output file name for labels l. With params the
// applied vsini, snr and radial velocity are appended, zero for those not
// applied.
func FormatName(l spectrum.Labels, st spectrum.State, params bool) string {
	if !params {
		return l.String() + extTSV
	}
	return strings.Join([]string{
		l.String(),
		formatParam(st.VsiniApplied, st.Vsini),
		formatParam(st.NoiseApplied, st.SNR),
		formatParam(st.RadialVelocityApplied, st.RadialVelocity),
	}, fieldSeparator) + extTSV
}

func formatParam(applied bool, v float64) string {
	if !applied {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
