// Package features turns fixed-size mono sample blocks into the feature
// record that drives music-reactive visuals.
//
// A [Pipeline] is built once per session from a block size and sample rate
// and then fed one [Frame] per captured block, strictly in capture order.
// Each call runs the stages in a fixed order:
//
//  1. [SpectralTransform]: packed spectrum and magnitude spectrum.
//  2. [BandSplitter]: bass, mid and high band blocks.
//  3. [LevelExtractor]: instantaneous RMS and peak per scope.
//  4. [EnvelopeTracker]: 28 slow/mid/fast envelopes, 7 per scope.
//  5. [Normalizer]: display-ready ratios.
//
// Every stage mutates the frame in place; none allocates or fails on a
// conforming frame. A frame whose buffers do not match the session block
// size is a programming error and panics.
package features
