// Package biquad runs cascades of second-order IIR sections over sample
// blocks.
//
// A [Chain] holds one delay line per section in Direct Form II Transposed
// and carries it from one block to the next, so a stream cut into blocks is
// filtered exactly as if it were processed in one piece. Coefficient sets
// come from dsp/filter/design.
package biquad
