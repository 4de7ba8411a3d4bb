package core

import (
	"errors"
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(48000), WithBlockSize(1024))
	if cfg.SampleRate != 48000 {
		t.Fatalf("sample rate = %v, want 48000", cfg.SampleRate)
	}
	if cfg.BlockSize != 1024 {
		t.Fatalf("block size = %d, want 1024", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProcessorConfig
		wantErr bool
	}{
		{name: "default", cfg: DefaultProcessorConfig()},
		{name: "zero rate", cfg: ProcessorConfig{SampleRate: 0, BlockSize: 512}, wantErr: true},
		{name: "nan rate", cfg: ProcessorConfig{SampleRate: math.NaN(), BlockSize: 512}, wantErr: true},
		{name: "zero block", cfg: ProcessorConfig{SampleRate: 44100, BlockSize: 0}, wantErr: true},
		{name: "odd block", cfg: ProcessorConfig{SampleRate: 44100, BlockSize: 511}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestBlockRate(t *testing.T) {
	cfg := ProcessorConfig{SampleRate: 48000, BlockSize: 480}
	if got := cfg.BlockRate(); got != 100 {
		t.Fatalf("BlockRate() = %v, want 100", got)
	}
	if got := cfg.BlockDuration(); !NearlyEqual(got, 0.01, 1e-12) {
		t.Fatalf("BlockDuration() = %v, want 0.01", got)
	}
	if got := (ProcessorConfig{}).BlockRate(); got != 0 {
		t.Fatalf("zero config BlockRate() = %v, want 0", got)
	}
}
