// Package specio reads and writes stellar spectra.
//
// Two input formats are supported: whitespace-separated text columns
// (wavelength, flux and an optional error) and FITS files, either as an
// image HDU with a linear wavelength axis described by the CRPIX1, CDELT1,
// CRVAL1 and NAXIS1 keywords or as a binary table with named columns.
// Wavelengths in Angstrom are converted to nanometres on read.
//
// Spectra are written as tab-separated text. File names carry the stellar
// labels, and optionally the applied perturbations, as
//
//	teff_logg_mh.tsv
//	teff_logg_mh_vsini_snr_radvel.tsv
//
// and [ParseFilename] recovers both from such a name.
package specio
