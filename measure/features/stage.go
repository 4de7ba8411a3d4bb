package features

import (
	"errors"
	"fmt"

	"github.com/martinblech/rtaudio/dsp/filter/biquad"
	"github.com/martinblech/rtaudio/dsp/filter/design"
	"github.com/martinblech/rtaudio/dsp/spectrum"
	timestats "github.com/martinblech/rtaudio/stats/time"
)

// ErrUnsupportedSampleRate is returned when a band cutoff does not fit below
// the Nyquist frequency of the session sample rate.
var ErrUnsupportedSampleRate = errors.New("features: sample rate too low for band split")

// Band split parameters.
const (
	BassCutoffHz = 250.0
	MidCenterHz  = 1350.0
	MidWidthHz   = 1500.0
	HighCutoffHz = 6000.0
	FilterOrder  = 4
)

// Stage is one step of the per-block pipeline. Process mutates f in place.
type Stage interface {
	Process(f *Frame)
}

// SpectralTransform fills Spectrum and MagnitudeSpectrum from Samples.
type SpectralTransform struct {
	fft *spectrum.RealFFT
}

// NewSpectralTransform plans the transform for blocks of n samples.
func NewSpectralTransform(n int) (*SpectralTransform, error) {
	fft, err := spectrum.NewRealFFT(n)
	if err != nil {
		return nil, err
	}
	return &SpectralTransform{fft: fft}, nil
}

// Process implements Stage.
func (s *SpectralTransform) Process(f *Frame) {
	s.fft.Forward(f.Spectrum, f.Samples)
	s.fft.Magnitude(f.MagnitudeSpectrum, f.Spectrum)
}

// BandSplitter filters Samples into the bass, mid and high band blocks.
// Filter state carries over between blocks.
type BandSplitter struct {
	bass *biquad.Chain
	mid  *biquad.Chain
	high *biquad.Chain
}

// NewBandSplitter designs the three band filters for sampleRate.
func NewBandSplitter(sampleRate float64) (*BandSplitter, error) {
	bass := design.ButterworthLP(BassCutoffHz, FilterOrder, sampleRate)
	if bass == nil {
		return nil, fmt.Errorf("%w: bass cutoff %v Hz at %v Hz", ErrUnsupportedSampleRate, BassCutoffHz, sampleRate)
	}

	midLow, midHigh := MidCenterHz-MidWidthHz/2, MidCenterHz+MidWidthHz/2
	midHP := design.ButterworthHP(midLow, FilterOrder, sampleRate)
	midLP := design.ButterworthLP(midHigh, FilterOrder, sampleRate)
	if midHP == nil || midLP == nil {
		return nil, fmt.Errorf("%w: mid band %v-%v Hz at %v Hz", ErrUnsupportedSampleRate, midLow, midHigh, sampleRate)
	}

	high := design.ButterworthHP(HighCutoffHz, FilterOrder, sampleRate)
	if high == nil {
		return nil, fmt.Errorf("%w: high cutoff %v Hz at %v Hz", ErrUnsupportedSampleRate, HighCutoffHz, sampleRate)
	}

	return &BandSplitter{
		bass: biquad.NewChain(bass),
		mid:  biquad.Cascade(biquad.NewChain(midHP), biquad.NewChain(midLP)),
		high: biquad.NewChain(high),
	}, nil
}

// Process implements Stage.
func (s *BandSplitter) Process(f *Frame) {
	s.bass.Filter(f.Bass.Samples, f.Samples)
	s.mid.Filter(f.Mid.Samples, f.Samples)
	s.high.Filter(f.High.Samples, f.Samples)
}

// MagnitudeDB returns the response of the filter feeding scope at freqHz.
// The full scope is unfiltered and reports 0 dB.
func (s *BandSplitter) MagnitudeDB(scope Scope, freqHz, sampleRate float64) float64 {
	switch scope {
	case ScopeBass:
		return s.bass.MagnitudeDB(freqHz, sampleRate)
	case ScopeMid:
		return s.mid.MagnitudeDB(freqHz, sampleRate)
	case ScopeHigh:
		return s.high.MagnitudeDB(freqHz, sampleRate)
	default:
		return 0
	}
}

// LevelExtractor writes the instantaneous RMS and Peak of every scope.
type LevelExtractor struct{}

// Process implements Stage.
func (LevelExtractor) Process(f *Frame) {
	for _, s := range Scopes {
		l := f.ScopeLevels(s)
		x := f.ScopeSamples(s)
		l.RMS = timestats.RMS(x)
		l.Peak = timestats.Peak(x)
	}
}

// Normalizer derives the normalized ratios of every scope from that scope's
// own raw and smoothed fields.
type Normalizer struct{}

// Process implements Stage.
func (Normalizer) Process(f *Frame) {
	for _, s := range Scopes {
		normalize(f.ScopeLevels(s))
	}
}

func normalize(l *Levels) {
	l.NormalizedRMS = safeDiv(l.RMS, l.RMSSlowMax)
	l.NormalizedRMSMid = safeDiv(l.RMSMid, l.RMSSlowMax)
	l.NormalizedRMSFast = safeDiv(l.RMSFast, l.RMSSlowMax)

	floor := l.RMSSlow
	span := l.PeakSlow - floor
	l.NormalizedPeak = safeDiv(l.Peak-floor, span)
	l.NormalizedPeakMid = safeDiv(l.PeakMid-floor, span)
	l.NormalizedPeakFast = safeDiv(l.PeakFast-floor, span)
}

// safeDiv returns num/den, or 0 when either operand is not positive (NaN
// included).
func safeDiv(num, den float64) float64 {
	if !(num > 0) || !(den > 0) {
		return 0
	}
	return num / den
}
