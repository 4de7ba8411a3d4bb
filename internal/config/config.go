// Package config provides the YAML configuration schema and loader for an
// rtaudio session.
package config

import "time"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// SourceKind selects where audio blocks come from.
type SourceKind string

const (
	// SourceSignal generates a synthetic test signal.
	SourceSignal SourceKind = "signal"

	// SourcePCM reads raw little-endian float32 mono PCM.
	SourcePCM SourceKind = "pcm"
)

// IsValid reports whether k is a recognised source kind.
func (k SourceKind) IsValid() bool {
	return k == SourceSignal || k == SourcePCM
}

// Waveform selects the synthetic signal shape.
type Waveform string

const (
	WaveformSine  Waveform = "sine"
	WaveformNoise Waveform = "noise"
)

// IsValid reports whether w is a recognised waveform.
func (w Waveform) IsValid() bool {
	return w == WaveformSine || w == WaveformNoise
}

// Config is the root configuration.
type Config struct {
	Audio  AudioConfig  `yaml:"audio"`
	Source SourceConfig `yaml:"source"`
	Server ServerConfig `yaml:"server"`
}

// AudioConfig fixes the session sizing.
type AudioConfig struct {
	// SampleRate in Hz. Default: 44100.
	SampleRate float64 `yaml:"sample_rate"`

	// BufferSize is the number of samples per block. Must be even.
	// Default: 512.
	BufferSize int `yaml:"buffer_size"`
}

// SourceConfig selects and tunes the block source.
type SourceConfig struct {
	Kind SourceKind `yaml:"kind"`

	// Input is a file path or "-" for stdin. Used by the pcm source.
	Input string `yaml:"input"`

	// QueueBlocks bounds how many captured blocks may wait for processing
	// before the oldest is dropped. Default: 4.
	QueueBlocks int `yaml:"queue_blocks"`

	// ReadTimeout is how long the stream waits for a block before giving
	// up. Default: 1s.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	Signal SignalConfig `yaml:"signal"`
}

// SignalConfig tunes the synthetic signal source.
type SignalConfig struct {
	Waveform  Waveform `yaml:"waveform"`
	Frequency float64  `yaml:"frequency"`
	Amplitude float64  `yaml:"amplitude"`
	Seed      int64    `yaml:"seed"`
}

// ServerConfig holds the frame server settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on. Default: ":3000".
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields of cfg with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = 44100
	}
	if cfg.Audio.BufferSize == 0 {
		cfg.Audio.BufferSize = 512
	}
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = SourceSignal
	}
	if cfg.Source.Input == "" {
		cfg.Source.Input = "-"
	}
	if cfg.Source.QueueBlocks == 0 {
		cfg.Source.QueueBlocks = 4
	}
	if cfg.Source.ReadTimeout == 0 {
		cfg.Source.ReadTimeout = time.Second
	}
	if cfg.Source.Signal.Waveform == "" {
		cfg.Source.Signal.Waveform = WaveformSine
	}
	if cfg.Source.Signal.Frequency == 0 {
		cfg.Source.Signal.Frequency = 440
	}
	if cfg.Source.Signal.Amplitude == 0 {
		cfg.Source.Signal.Amplitude = 0.5
	}
	if cfg.Source.Signal.Seed == 0 {
		cfg.Source.Signal.Seed = 1
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":3000"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
}
