package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when a ProcessorConfig cannot host a session.
var ErrInvalidConfig = errors.New("core: invalid processor config")

// ProcessorConfig defines the fixed per-session processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the capture defaults: 44.1 kHz, 512-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		BlockSize:  512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether cfg describes a usable session: a finite positive
// sample rate and a positive, even block size.
func (cfg ProcessorConfig) Validate() error {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidConfig, cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidConfig, cfg.BlockSize)
	}
	if cfg.BlockSize%2 != 0 {
		return fmt.Errorf("%w: block size must be even: %d", ErrInvalidConfig, cfg.BlockSize)
	}
	return nil
}

// BlockRate returns the number of blocks per second, the rate at which
// per-block state such as envelope followers is updated.
func (cfg ProcessorConfig) BlockRate() float64 {
	if cfg.BlockSize <= 0 {
		return 0
	}
	return cfg.SampleRate / float64(cfg.BlockSize)
}

// BlockDuration returns the wall-clock span of one block in seconds.
func (cfg ProcessorConfig) BlockDuration() float64 {
	if cfg.SampleRate <= 0 {
		return 0
	}
	return float64(cfg.BlockSize) / cfg.SampleRate
}
