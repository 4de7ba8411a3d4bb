// Package stream drives a feature pipeline from a block source.
//
// A [Source] yields fixed-size mono blocks. [PCMSource] decodes raw
// little-endian float32 PCM from any reader through a bounded queue that
// drops the oldest block when the consumer falls behind, and [SignalSource]
// produces paced synthetic audio. [Stream] pulls blocks, runs them through a
// [features.Pipeline] and hands each populated frame to a callback in
// capture order. [NewMessage] snapshots a frame into its JSON wire form.
package stream
