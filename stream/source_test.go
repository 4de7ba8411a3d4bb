package stream

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/martinblech/rtaudio/dsp/core"
	"github.com/martinblech/rtaudio/dsp/signal"
	"github.com/martinblech/rtaudio/internal/testutil"
)

func newSine(t *testing.T, cfg core.ProcessorConfig) *signal.SineOscillator {
	t.Helper()
	gen := signal.NewGenerator([]core.ProcessorOption{
		core.WithSampleRate(cfg.SampleRate),
		core.WithBlockSize(cfg.BlockSize),
	})
	osc, err := gen.Sine(1000, 0.5)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	return osc
}

func TestSignalSourceIsPhaseContinuous(t *testing.T) {
	cfg := core.ProcessorConfig{SampleRate: 48000, BlockSize: 64}
	src, err := NewSignalSource(newSine(t, cfg), cfg, WithoutPacing(), WithBlockLimit(3))
	if err != nil {
		t.Fatalf("NewSignalSource() error = %v", err)
	}
	defer src.Close()

	ref := newSine(t, cfg)
	want := make([]float64, 3*cfg.BlockSize)
	ref.Fill(want)

	got := make([]float64, 0, len(want))
	dst := make([]float64, cfg.BlockSize)
	for i := range 3 {
		overflowed, err := src.ReadBlock(context.Background(), dst)
		if err != nil {
			t.Fatalf("block %d: ReadBlock() error = %v", i, err)
		}
		if overflowed {
			t.Fatalf("block %d: unexpected overflow", i)
		}
		got = append(got, dst...)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)

	if _, err := src.ReadBlock(context.Background(), dst); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadBlock() past limit error = %v, want io.EOF", err)
	}
}

func TestSignalSourcePacing(t *testing.T) {
	cfg := core.ProcessorConfig{SampleRate: 48000, BlockSize: 480}
	src, err := NewSignalSource(newSine(t, cfg), cfg)
	if err != nil {
		t.Fatalf("NewSignalSource() error = %v", err)
	}
	defer src.Close()

	dst := make([]float64, cfg.BlockSize)
	start := time.Now()
	for range 2 {
		if _, err := src.ReadBlock(context.Background(), dst); err != nil {
			t.Fatalf("ReadBlock() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("two paced 10ms blocks took %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.ReadBlock(ctx, dst); !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadBlock(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestNewSignalSourceValidates(t *testing.T) {
	cfg := core.DefaultProcessorConfig()
	if _, err := NewSignalSource(nil, cfg); err == nil {
		t.Fatal("NewSignalSource(nil) succeeded")
	}
	bad := core.ProcessorConfig{SampleRate: 44100, BlockSize: 7}
	if _, err := NewSignalSource(newSine(t, cfg), bad); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("NewSignalSource(odd block) error = %v, want ErrInvalidConfig", err)
	}

	src, err := NewSignalSource(newSine(t, cfg), cfg, WithoutPacing())
	if err != nil {
		t.Fatalf("NewSignalSource() error = %v", err)
	}
	if _, err := src.ReadBlock(context.Background(), make([]float64, 3)); !errors.Is(err, ErrBlockSize) {
		t.Fatalf("ReadBlock(short dst) error = %v, want ErrBlockSize", err)
	}
}
