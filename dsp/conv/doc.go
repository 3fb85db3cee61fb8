// Package conv provides linear convolution of sampled profiles.
//
// Two strategies are available:
//
//   - Direct convolution: O(N*M) time-domain sum, best for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// # Usage
//
// For one-shot convolution, use the simple functions:
//
//	full, err := conv.Convolve(signal, kernel)             // Auto-selects algorithm
//	same, err := conv.ConvolveMode(signal, kernel, conv.ModeSame)
//	full, err := conv.Direct(signal, kernel)               // Force direct convolution
//
// For repeated convolution with the same kernel, create a reusable convolver:
//
//	c, err := conv.NewOverlapAdd(kernel, blockSize)
//	result, err := c.Process(signal)
//
// # Output modes
//
// [ModeSame] keeps the length of the first input and centres the result the
// same way as numpy/scipy "same" mode: the output starts at index
// (len(kernel)-1)/2 of the full result. For an odd, symmetric kernel this
// leaves features at their original positions, which is what line-profile
// broadening relies on.
//
// # Algorithm Selection
//
// [Convolve] uses direct convolution while the shorter input has at most 64
// samples and FFT overlap-add above that.
package conv
