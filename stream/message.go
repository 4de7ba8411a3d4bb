package stream

import (
	"github.com/martinblech/rtaudio/measure/features"
)

// LevelsMessage is the wire form of a level record.
type LevelsMessage struct {
	RMS               float32 `json:"rms"`
	RMSSlow           float32 `json:"rmsSlow"`
	RMSMid            float32 `json:"rmsMid"`
	RMSFast           float32 `json:"rmsFast"`
	NormalizedRMS     float32 `json:"normalizedRms"`
	NormalizedRMSMid  float32 `json:"normalizedRmsMid"`
	NormalizedRMSFast float32 `json:"normalizedRmsFast"`

	Peak               float32 `json:"peak"`
	PeakSlow           float32 `json:"peakSlow"`
	PeakMid            float32 `json:"peakMid"`
	PeakFast           float32 `json:"peakFast"`
	NormalizedPeak     float32 `json:"normalizedPeak"`
	NormalizedPeakMid  float32 `json:"normalizedPeakMid"`
	NormalizedPeakFast float32 `json:"normalizedPeakFast"`
}

// BandMessage is the wire form of one band.
type BandMessage struct {
	Samples []float32 `json:"samples"`
	LevelsMessage
}

// Message is a self-contained JSON snapshot of one frame.
type Message struct {
	SampleRate  float64   `json:"sampleRate"`
	Index       uint64    `json:"index"`
	Overflowed  bool      `json:"overflowed"`
	Samples     []float32 `json:"samples"`
	FFT         []float32 `json:"fft"`
	AbsoluteFFT []float32 `json:"absoluteFft"`
	LevelsMessage

	Bass BandMessage `json:"bass"`
	Mid  BandMessage `json:"mid"`
	High BandMessage `json:"high"`
}

// NewMessage copies f into a message. The result does not alias f.
func NewMessage(f *features.Frame, info BlockInfo) *Message {
	return &Message{
		SampleRate:    info.SampleRate,
		Index:         info.Index,
		Overflowed:    info.Overflowed,
		Samples:       toFloat32(f.Samples),
		FFT:           toFloat32(f.Spectrum),
		AbsoluteFFT:   toFloat32(f.MagnitudeSpectrum),
		LevelsMessage: newLevelsMessage(&f.Levels),
		Bass:          newBandMessage(&f.Bass),
		Mid:           newBandMessage(&f.Mid),
		High:          newBandMessage(&f.High),
	}
}

func newBandMessage(b *features.Band) BandMessage {
	return BandMessage{
		Samples:       toFloat32(b.Samples),
		LevelsMessage: newLevelsMessage(&b.Levels),
	}
}

func newLevelsMessage(l *features.Levels) LevelsMessage {
	return LevelsMessage{
		RMS:                float32(l.RMS),
		RMSSlow:            float32(l.RMSSlow),
		RMSMid:             float32(l.RMSMid),
		RMSFast:            float32(l.RMSFast),
		NormalizedRMS:      float32(l.NormalizedRMS),
		NormalizedRMSMid:   float32(l.NormalizedRMSMid),
		NormalizedRMSFast:  float32(l.NormalizedRMSFast),
		Peak:               float32(l.Peak),
		PeakSlow:           float32(l.PeakSlow),
		PeakMid:            float32(l.PeakMid),
		PeakFast:           float32(l.PeakFast),
		NormalizedPeak:     float32(l.NormalizedPeak),
		NormalizedPeakMid:  float32(l.NormalizedPeakMid),
		NormalizedPeakFast: float32(l.NormalizedPeakFast),
	}
}

func toFloat32(src []float64) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(v)
	}
	return out
}
