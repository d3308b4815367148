// Package savgol implements Savitzky-Golay smoothing: a moving local
// polynomial least-squares fit evaluated at the window centre.
//
// The interior of the signal is computed as a correlation with the fixed
// smoothing kernel. Short kernels use direct dot products; kernels longer
// than 64 taps switch to FFT convolution. The first and last half-windows
// are handled by fitting a polynomial to the outermost full window and
// evaluating it at the edge positions, so the output has the same length as
// the input and polynomials up to the filter order pass through unchanged.
//
// # Usage
//
//	smooth, err := savgol.Filter(modulus, 11, 2)
//	if err != nil {
//		smooth = modulus // fall back to the raw series
//	}
package savgol
