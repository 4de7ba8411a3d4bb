package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// validates the result. Unknown keys are rejected. An empty document yields
// the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Audio
	if sr := cfg.Audio.SampleRate; !(sr > 0) || math.IsInf(sr, 0) {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be a positive number, got %v", sr))
	}
	if n := cfg.Audio.BufferSize; n <= 0 || n%2 != 0 {
		errs = append(errs, fmt.Errorf("audio.buffer_size must be a positive even number, got %d", n))
	}

	// Source
	if !cfg.Source.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("source.kind %q is invalid; valid values: signal, pcm", cfg.Source.Kind))
	}
	if cfg.Source.Kind == SourcePCM && cfg.Source.Input == "" {
		errs = append(errs, errors.New("source.input is required for the pcm source"))
	}
	if cfg.Source.QueueBlocks < 1 {
		errs = append(errs, fmt.Errorf("source.queue_blocks must be >= 1, got %d", cfg.Source.QueueBlocks))
	}
	if cfg.Source.ReadTimeout < 0 {
		errs = append(errs, fmt.Errorf("source.read_timeout must not be negative, got %s", cfg.Source.ReadTimeout))
	}

	sig := cfg.Source.Signal
	if !sig.Waveform.IsValid() {
		errs = append(errs, fmt.Errorf("source.signal.waveform %q is invalid; valid values: sine, noise", sig.Waveform))
	}
	if sig.Frequency < 0 || (cfg.Audio.SampleRate > 0 && sig.Frequency >= cfg.Audio.SampleRate/2) {
		errs = append(errs, fmt.Errorf("source.signal.frequency must be in [0, sample_rate/2), got %v", sig.Frequency))
	}
	if sig.Amplitude < 0 {
		errs = append(errs, fmt.Errorf("source.signal.amplitude must not be negative, got %v", sig.Amplitude))
	}

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	return errors.Join(errs...)
}
