// Package interp resamples tabulated functions.
//
// Available methods:
//
//   - [LinearTo]: piecewise-linear interpolation with clamped ends,
//     matching numpy.interp
//   - [Spline]: cubic spline through knots (not-a-knot ends), with a linear
//     fallback when too few knots are available for a cubic
//
// Abscissae must be strictly increasing.
package interp
