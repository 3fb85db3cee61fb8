// Package continuum fits and divides out the continuum of a stellar spectrum.
//
// The continuum is traced by anchor points: the wavelength axis is cut into
// windows of fixed width and each window contributes the position of its
// highest smoothed flux. Anchors inside hydrogen Balmer bands are rejected,
// since the wings of those lines would drag the fit down. A last anchor close
// to the red end pins the right edge. An interpolating cubic spline through
// the anchors is the continuum, and the spectrum is divided by it.
//
// # Usage
//
//	n := continuum.NewNormalizer(continuum.WithLogger(log))
//	normalized, fit, err := n.Normalize(s, 10) // 10 nm windows
//
// The excluded bands are given in nanometres, so spectra should be on a
// nanometre axis (see grid.Resample) before normalization.
package continuum
