// Package spectrum defines the immutable stellar spectrum value shared by the
// perturbation, resampling and normalization stages, together with the error
// taxonomy those stages report.
//
// A [Spectrum] holds strictly increasing wavelengths, fluxes of the same
// length, optional per-sample errors, filename labels (teff, logg, [M/H]),
// the record of one-shot perturbations already applied, and optionally the
// continuum fit that produced its normalized flux.
//
// # Usage
//
// Spectra are never modified after construction. A stage derives a new value
// through a [Builder]:
//
//	s, err := spectrum.New(wl, flux, nil, spectrum.WithLabels(labels))
//
//	b := s.Edit()             // deep copy of s
//	b.SetFluxes(broadened)
//	if err := b.MarkVsini(50); err != nil {
//		return err            // ErrVsiniAlreadyApplied
//	}
//	out, err := b.Build()     // validated, independent of s
//
// Accessors return copies, so callers may modify what they receive.
//
// # Errors
//
// All sentinel errors live in this package so callers can match them with
// [errors.Is] regardless of which stage failed. The three "already applied"
// variants all match [ErrAlreadyApplied].
package spectrum
