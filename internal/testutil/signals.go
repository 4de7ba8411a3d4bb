// Package testutil holds deterministic signals and tolerance helpers shared
// by the package tests.
package testutil

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Alternating generates amplitude, -amplitude, amplitude, ... which puts
// all energy in the Nyquist bin.
func Alternating(amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i%2 == 0 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out
}

// Blocks splits signal into consecutive blocks of blockSize samples. A short
// tail is dropped.
func Blocks(signal []float64, blockSize int) [][]float64 {
	if blockSize <= 0 {
		return nil
	}
	out := make([][]float64, 0, len(signal)/blockSize)
	for i := 0; i+blockSize <= len(signal); i += blockSize {
		out = append(out, signal[i:i+blockSize])
	}
	return out
}

// Float32LE encodes samples as little-endian float32 PCM, the byte layout
// capture tools such as arecord and ffmpeg emit with -f FLOAT_LE / f32le.
func Float32LE(samples []float64) []byte {
	out := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(float32(v)))
	}
	return out
}
