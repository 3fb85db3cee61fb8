package specio

import "errors"

var (
	// ErrMissingColumn is returned when a requested column is absent.
	ErrMissingColumn = errors.New("specio: missing column")
	// ErrMissingHeader is returned when a FITS keyword needed for the
	// wavelength axis is absent.
	ErrMissingHeader = errors.New("specio: missing header keyword")
	// ErrBadFilename is returned when a file name does not carry labels.
	ErrBadFilename = errors.New("specio: file name does not carry labels")
	// ErrBadRow is returned for text rows that cannot be parsed.
	ErrBadRow = errors.New("specio: malformed row")
)
