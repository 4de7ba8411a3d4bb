package time

import (
	"math"
	"testing"

	"github.com/martinblech/rtaudio/internal/testutil"
)

func TestRMS(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"dc", testutil.DC(0.3, 512), 0.3},
		{"single", []float64{-4}, 4},
		{"alternating", testutil.Alternating(1, 1000), 1},
		{"sine", testutil.DeterministicSine(100, 12800, 1, 1280), 1 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.signal); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("RMS = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"positive", []float64{1, 2, 3}, 3},
		{"negative", []float64{-5, -1, -3}, 5},
		{"mixed", []float64{2, -7, 3}, 7},
		{"dc", testutil.DC(0.3, 512), 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Peak(tt.signal); got != tt.want {
				t.Fatalf("Peak = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSNeverExceedsPeak(t *testing.T) {
	for _, sig := range [][]float64{
		nil,
		{0},
		testutil.DeterministicNoise(3, 0.8, 512),
		testutil.DeterministicSine(440, 44100, 0.5, 512),
	} {
		rms, peak := RMS(sig), Peak(sig)
		testutil.RequireNonNegative(t, "levels", rms, peak)
		if rms > peak+1e-15 {
			t.Fatalf("RMS %v above peak %v", rms, peak)
		}
	}
}
