package features

import (
	"math"
	"testing"

	"github.com/martinblech/rtaudio/dsp/envelope"
)

func TestEnvelopeTracker_Has28Followers(t *testing.T) {
	tr, err := NewEnvelopeTracker(testRate / 512)
	if err != nil {
		t.Fatalf("NewEnvelopeTracker: %v", err)
	}
	if tr.Len() != 28 {
		t.Fatalf("Len() = %d, want 28", tr.Len())
	}
	for _, s := range Scopes {
		for _, m := range TrackedMetrics {
			if tr.Follower(s, m.Output) == nil {
				t.Fatalf("missing %v %v follower", s, m.Output)
			}
		}
	}
	if tr.Follower(ScopeFull, FieldRMS) != nil {
		t.Fatal("raw RMS should not be tracked")
	}
}

func TestEnvelopeTracker_ModesAndAlpha(t *testing.T) {
	const rate = testRate / 512
	tr, err := NewEnvelopeTracker(rate)
	if err != nil {
		t.Fatalf("NewEnvelopeTracker: %v", err)
	}

	tests := []struct {
		out  Field
		mode envelope.Mode
		tau  float64
	}{
		{FieldRMSSlowMax, envelope.MaxHold, 120},
		{FieldPeakSlow, envelope.MaxHold, 120},
		{FieldPeakMid, envelope.MaxHold, 0.75},
		{FieldPeakFast, envelope.MaxHold, 0.1},
		{FieldRMSSlow, envelope.Average, 120},
		{FieldRMSMid, envelope.Average, 0.75},
		{FieldRMSFast, envelope.Average, 0.1},
	}
	for _, s := range Scopes {
		for _, tt := range tests {
			f := tr.Follower(s, tt.out)
			if f.Mode() != tt.mode {
				t.Fatalf("%v %v mode = %v, want %v", s, tt.out, f.Mode(), tt.mode)
			}
			want := 1 - math.Exp(-1/(rate*tt.tau))
			if math.Abs(f.Alpha()-want) > 1e-15 {
				t.Fatalf("%v %v alpha = %v, want %v", s, tt.out, f.Alpha(), want)
			}
		}
	}
}

func TestEnvelopeTracker_FirstBlockAdopts(t *testing.T) {
	tr, _ := NewEnvelopeTracker(testRate / 512)
	f := NewFrame(8)
	for i, s := range Scopes {
		l := f.ScopeLevels(s)
		l.RMS = 0.1 * float64(i+1)
		l.Peak = 0.2 * float64(i+1)
	}

	tr.Process(f)

	for _, s := range Scopes {
		l := f.ScopeLevels(s)
		for _, m := range TrackedMetrics {
			if got, want := l.Get(m.Output), l.Get(m.Input); got != want {
				t.Fatalf("%v %v = %v, want first input %v", s, m.Output, got, want)
			}
		}
	}
}

func TestEnvelopeTracker_ScopesIndependent(t *testing.T) {
	tr, _ := NewEnvelopeTracker(testRate / 512)
	f := NewFrame(8)
	f.Bass.RMS, f.Bass.Peak = 0.5, 0.5
	tr.Process(f)

	f.Bass.RMS, f.Bass.Peak = 0.1, 0.9
	tr.Process(f)

	if f.Bass.PeakFast != 0.9 {
		t.Fatalf("bass PeakFast = %v, want instant jump to 0.9", f.Bass.PeakFast)
	}
	if !(f.Bass.RMSFast < 0.5 && f.Bass.RMSFast > 0.1) {
		t.Fatalf("bass RMSFast = %v, want between 0.1 and 0.5", f.Bass.RMSFast)
	}
	if f.High.RMSFast != 0 || f.RMSSlowMax != 0 {
		t.Fatalf("silent scopes moved: high=%v full=%v", f.High.RMSFast, f.RMSSlowMax)
	}
}

func TestNewEnvelopeTracker_InvalidRate(t *testing.T) {
	if _, err := NewEnvelopeTracker(0); err == nil {
		t.Fatal("expected error for zero block rate")
	}
}
