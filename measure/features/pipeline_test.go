package features

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/martinblech/rtaudio/dsp/core"
	"github.com/martinblech/rtaudio/internal/testutil"
)

func mustPipeline(t *testing.T, opts ...core.ProcessorOption) *Pipeline {
	t.Helper()
	p, err := NewPipeline(opts...)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

func TestNewPipeline_Defaults(t *testing.T) {
	p := mustPipeline(t)
	cfg := p.Config()
	if cfg.SampleRate != 44100 || cfg.BlockSize != 512 {
		t.Fatalf("Config() = %+v, want 44100/512", cfg)
	}
	if f := p.NewFrame(); f.BlockSize() != 512 {
		t.Fatalf("NewFrame().BlockSize() = %d", f.BlockSize())
	}
}

func TestNewPipeline_Errors(t *testing.T) {
	if _, err := NewPipeline(core.WithBlockSize(511)); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("odd block size: %v, want ErrInvalidConfig", err)
	}
	if _, err := NewPipeline(core.WithSampleRate(8000)); !errors.Is(err, ErrUnsupportedSampleRate) {
		t.Fatalf("8 kHz: %v, want ErrUnsupportedSampleRate", err)
	}
}

func TestPipeline_MisSizedFramePanics(t *testing.T) {
	p := mustPipeline(t)
	tests := []struct {
		name  string
		frame *Frame
	}{
		{"smaller frame", NewFrame(256)},
		{"short spectrum", func() *Frame { f := NewFrame(512); f.Spectrum = f.Spectrum[:512]; return f }()},
		{"short band", func() *Frame { f := NewFrame(512); f.Mid.Samples = nil; return f }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			p.Process(tt.frame)
		})
	}
}

func TestPipeline_FirstCallAdoptsRaw(t *testing.T) {
	p := mustPipeline(t)
	f := p.NewFrame()
	copy(f.Samples, testutil.DeterministicNoise(5, 0.7, 512))
	p.Process(f)

	for _, s := range Scopes {
		l := f.ScopeLevels(s)
		for _, fld := range []Field{FieldRMSSlowMax, FieldRMSSlow, FieldRMSMid, FieldRMSFast} {
			if l.Get(fld) != l.RMS {
				t.Fatalf("%v %v = %v, want raw RMS %v", s, fld, l.Get(fld), l.RMS)
			}
		}
		for _, fld := range []Field{FieldPeakSlow, FieldPeakMid, FieldPeakFast} {
			if l.Get(fld) != l.Peak {
				t.Fatalf("%v %v = %v, want raw peak %v", s, fld, l.Get(fld), l.Peak)
			}
		}
		if l.RMS > 0 && l.NormalizedRMS != 1 {
			t.Fatalf("%v NormalizedRMS = %v, want 1", s, l.NormalizedRMS)
		}
	}
}

func TestPipeline_SilenceNormalizesToZero(t *testing.T) {
	p := mustPipeline(t)
	f := p.NewFrame()
	for range 3 {
		p.Process(f)
	}
	for _, s := range Scopes {
		l := f.ScopeLevels(s)
		if l.RMS != 0 || l.Peak != 0 || l.NormalizedRMS != 0 || l.NormalizedPeak != 0 {
			t.Fatalf("%v: silent block produced %+v", s, *l)
		}
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	a := mustPipeline(t)
	b := mustPipeline(t)
	fa, fb := a.NewFrame(), b.NewFrame()

	sig := testutil.DeterministicNoise(9, 0.5, 512*12)
	for i, block := range testutil.Blocks(sig, 512) {
		copy(fa.Samples, block)
		copy(fb.Samples, block)
		a.Process(fa)
		b.Process(fb)
		if !reflect.DeepEqual(fa, fb) {
			t.Fatalf("frames diverged at block %d", i)
		}
	}
}

func TestPipeline_ConstantInputConverges(t *testing.T) {
	p := mustPipeline(t)
	f := p.NewFrame()

	// A loud start, then a steady level.
	copy(f.Samples, testutil.Alternating(0.9, 512))
	p.Process(f)

	steady := testutil.Alternating(0.2, 512)
	fastDone, midDone := -1, -1
	for i := range 2000 {
		copy(f.Samples, steady)
		p.Process(f)
		if fastDone < 0 && math.Abs(f.RMSFast-0.2) < 1e-6 {
			fastDone = i
		}
		if midDone < 0 && math.Abs(f.RMSMid-0.2) < 1e-6 {
			midDone = i
		}
	}
	if fastDone < 0 || midDone < 0 {
		t.Fatalf("did not converge: fast=%d mid=%d (RMSFast=%v RMSMid=%v)", fastDone, midDone, f.RMSFast, f.RMSMid)
	}
	if fastDone >= midDone {
		t.Fatalf("fast converged at %d, mid at %d; want fast first", fastDone, midDone)
	}
	if math.Abs(f.PeakFast-0.2) > 1e-6 || math.Abs(f.PeakMid-0.2) > 1e-6 {
		t.Fatalf("peak envelopes = %v/%v, want 0.2", f.PeakFast, f.PeakMid)
	}
	// The slow ceiling holds the loud start and only creeps down.
	if !(f.RMSSlowMax > 0.5 && f.RMSSlowMax < 0.9) {
		t.Fatalf("RMSSlowMax = %v, want held near 0.9", f.RMSSlowMax)
	}
}

func TestPipeline_SineBandRouting(t *testing.T) {
	tests := []struct {
		freq   float64
		loud   Scope
		quiet  Scope
		scopes string
	}{
		{100, ScopeBass, ScopeHigh, "bass over high"},
		{10000, ScopeHigh, ScopeBass, "high over bass"},
		{MidCenterHz, ScopeMid, ScopeHigh, "mid over high"},
		{MidCenterHz, ScopeMid, ScopeBass, "mid over bass"},
	}
	for _, tt := range tests {
		t.Run(tt.scopes, func(t *testing.T) {
			p := mustPipeline(t)
			f := p.NewFrame()
			cfg := p.Config()
			sig := testutil.DeterministicSine(tt.freq, cfg.SampleRate, 0.5, cfg.BlockSize*20)
			for _, block := range testutil.Blocks(sig, cfg.BlockSize) {
				copy(f.Samples, block)
				p.Process(f)
			}

			if loud, quiet := f.ScopeLevels(tt.loud).RMS, f.ScopeLevels(tt.quiet).RMS; loud <= 10*quiet {
				t.Fatalf("%v RMS %v not well above %v RMS %v", tt.loud, loud, tt.quiet, quiet)
			}

			peak := 0
			for k, v := range f.MagnitudeSpectrum {
				if v > f.MagnitudeSpectrum[peak] {
					peak = k
				}
			}
			binWidth := cfg.SampleRate / float64(cfg.BlockSize)
			if math.Abs(float64(peak)*binWidth-tt.freq) > binWidth {
				t.Fatalf("peak bin %d does not match %v Hz", peak, tt.freq)
			}
		})
	}
}

func TestPipeline_NormalizedNonNegative(t *testing.T) {
	p := mustPipeline(t, core.WithBlockSize(256), core.WithSampleRate(48000))
	f := p.NewFrame()
	sig := testutil.DeterministicNoise(21, 0.8, 256*40)
	for i, block := range testutil.Blocks(sig, 256) {
		// Fade out to exercise decaying envelopes.
		scale := 1 - float64(i)/40
		for j, v := range block {
			f.Samples[j] = v * scale
		}
		p.Process(f)
		for _, s := range Scopes {
			l := f.ScopeLevels(s)
			testutil.RequireNonNegative(t, s.String(),
				l.RMS, l.Peak, l.RMSSlowMax, l.RMSSlow, l.RMSMid, l.RMSFast,
				l.PeakSlow, l.PeakMid, l.PeakFast,
				l.NormalizedRMS, l.NormalizedRMSMid, l.NormalizedRMSFast,
				l.NormalizedPeak, l.NormalizedPeakMid, l.NormalizedPeakFast)
		}
	}
}
