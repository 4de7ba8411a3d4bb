// Package spectrum computes the frequency-domain view of a real block.
//
// [RealFFT] wraps a reusable forward FFT plan and produces a packed
// real-to-complex spectrum of n+2 values for an n-sample block:
//
//	dst[2k], dst[2k+1] = Re X[k], Im X[k]   for k in [0, n/2]
//
// The imaginary parts of the DC and Nyquist bins are always zero for real
// input and are stored as exact zeros at dst[1] and dst[n+1]. The transform
// is unnormalized and unwindowed.
//
// [RealFFT.Magnitude] turns a packed spectrum into the n/2+1 bin magnitudes
// |X[0]| .. |X[n/2]|.
package spectrum
