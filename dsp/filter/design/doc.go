// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ-style second-order
// primitives ([Lowpass], [Highpass]) and Butterworth cascades built from
// them ([ButterworthLP], [ButterworthHP]). A band-pass is a highpass cascade
// joined to a lowpass cascade with biquad.Cascade.
//
// Designers never return an error. Out-of-range inputs (a cutoff at or above
// Nyquist, a non-positive sample rate) yield nil cascades or zero
// coefficients, which callers validate up front.
package design
