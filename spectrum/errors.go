package spectrum

import (
	"errors"
	"fmt"
)

// Parameter and grid errors.
var (
	ErrParamTooSmall     = errors.New("spectrum: parameter too small")
	ErrParamTooLarge     = errors.New("spectrum: parameter too large")
	ErrWavelengthSpacing = errors.New("spectrum: wavelength spacing is not uniform")
)

// One-shot perturbation errors. Each variant wraps ErrAlreadyApplied.
var (
	ErrAlreadyApplied               = errors.New("spectrum: perturbation already applied")
	ErrVsiniAlreadyApplied          = fmt.Errorf("%w: vsini", ErrAlreadyApplied)
	ErrNoiseAlreadyApplied          = fmt.Errorf("%w: noise", ErrAlreadyApplied)
	ErrRadialVelocityAlreadyApplied = fmt.Errorf("%w: radial velocity", ErrAlreadyApplied)
)

// Shape and content errors.
var (
	ErrArrayLengthMismatch = errors.New("spectrum: array length mismatch")
	ErrEmpty               = errors.New("spectrum: no samples")
	ErrNotIncreasing       = errors.New("spectrum: wavelengths not strictly increasing")
	ErrInvalidFlux         = errors.New("spectrum: invalid flux")
)
