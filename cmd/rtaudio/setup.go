package main

import (
	"fmt"
	"io"
	"os"

	"github.com/martinblech/rtaudio/dsp/core"
	dspsignal "github.com/martinblech/rtaudio/dsp/signal"
	"github.com/martinblech/rtaudio/internal/config"
	"github.com/martinblech/rtaudio/stream"
)

// overrides holds command-line values that take precedence over the file.
type overrides struct {
	listen   string
	source   string
	input    string
	logLevel string
}

func (o overrides) apply(cfg *config.Config) {
	if o.listen != "" {
		cfg.Server.ListenAddr = o.listen
	}
	if o.source != "" {
		cfg.Source.Kind = config.SourceKind(o.source)
	}
	if o.input != "" {
		cfg.Source.Input = o.input
	}
	if o.logLevel != "" {
		cfg.Server.LogLevel = config.LogLevel(o.logLevel)
	}
}

// loadConfig reads path, or the defaults when path is empty, then applies
// the flag overrides and validates the result.
func loadConfig(path string, ov overrides) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	ov.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// source is a stream.Source that owns resources.
type source interface {
	stream.Source
	io.Closer
}

// openSource builds the configured block source.
func openSource(cfg *config.Config, pcfg core.ProcessorConfig) (source, error) {
	switch cfg.Source.Kind {
	case config.SourcePCM:
		r := os.Stdin
		if cfg.Source.Input != "-" {
			f, err := os.Open(cfg.Source.Input)
			if err != nil {
				return nil, fmt.Errorf("open pcm input: %w", err)
			}
			r = f
		}
		src, err := stream.NewPCMSource(r, pcfg.BlockSize, stream.WithQueueBlocks(cfg.Source.QueueBlocks))
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		return src, nil

	case config.SourceSignal:
		gen := dspsignal.NewGenerator([]core.ProcessorOption{
			core.WithSampleRate(pcfg.SampleRate),
			core.WithBlockSize(pcfg.BlockSize),
		}, dspsignal.WithSeed(cfg.Source.Signal.Seed))

		var osc dspsignal.Oscillator
		sig := cfg.Source.Signal
		switch sig.Waveform {
		case config.WaveformNoise:
			noise, err := gen.WhiteNoise(sig.Amplitude)
			if err != nil {
				return nil, err
			}
			osc = noise
		default:
			sine, err := gen.Sine(sig.Frequency, sig.Amplitude)
			if err != nil {
				return nil, err
			}
			osc = sine
		}
		src, err := stream.NewSignalSource(osc, pcfg)
		if err != nil {
			return nil, err
		}
		return src, nil

	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}
