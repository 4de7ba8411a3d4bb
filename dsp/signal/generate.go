// Package signal generates deterministic synthetic test signals.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/martinblech/rtaudio/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Oscillator fills consecutive blocks of one continuous signal.
type Oscillator interface {
	Fill(dst []float64)
}

// Sine returns a phase-continuous sine oscillator starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64) (*SineOscillator, error) {
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if freqHz < 0 || freqHz >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %f): %f", g.cfg.SampleRate/2, freqHz)
	}
	return &SineOscillator{
		step:      2 * math.Pi * freqHz / g.cfg.SampleRate,
		amplitude: amplitude,
	}, nil
}

// WhiteNoise returns a seeded uniform noise source in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64) (*NoiseOscillator, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	return &NoiseOscillator{
		rng:       rand.New(rand.NewSource(g.seed)),
		amplitude: amplitude,
	}, nil
}

// SineOscillator is a phase-accumulating sine generator.
type SineOscillator struct {
	step      float64
	phase     float64
	amplitude float64
}

// Fill writes the next len(dst) samples.
func (o *SineOscillator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = o.amplitude * math.Sin(o.phase)
		o.phase += o.step
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
}

// NoiseOscillator is a seeded white noise generator.
type NoiseOscillator struct {
	rng       *rand.Rand
	amplitude float64
}

// Fill writes the next len(dst) samples.
func (o *NoiseOscillator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = (o.rng.Float64()*2 - 1) * o.amplitude
	}
}
