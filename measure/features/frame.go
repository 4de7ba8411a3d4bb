package features

import "fmt"

// Band is one filtered view of the block with its own level features.
type Band struct {
	Samples []float64
	Levels
}

// Frame holds one block of raw samples and every feature derived from it.
// A frame is allocated once per session and overwritten in place by each
// Pipeline.Process call.
type Frame struct {
	// Samples is the raw block, length N.
	Samples []float64
	// Spectrum is the packed forward transform, length N+2: re/im pairs with
	// the Nyquist real part at N and zeros at 1 and N+1.
	Spectrum []float64
	// MagnitudeSpectrum holds |X[k]| for k in [0, N/2], length N/2+1.
	MagnitudeSpectrum []float64

	Levels

	Bass Band
	Mid  Band
	High Band
}

// NewFrame allocates a frame for blocks of n samples. It panics if n is not
// positive and even.
func NewFrame(n int) *Frame {
	if n <= 0 || n%2 != 0 {
		panic(fmt.Sprintf("features: frame size must be positive and even: %d", n))
	}
	return &Frame{
		Samples:           make([]float64, n),
		Spectrum:          make([]float64, n+2),
		MagnitudeSpectrum: make([]float64, n/2+1),
		Bass:              Band{Samples: make([]float64, n)},
		Mid:               Band{Samples: make([]float64, n)},
		High:              Band{Samples: make([]float64, n)},
	}
}

// BlockSize returns N, the number of raw samples per block.
func (f *Frame) BlockSize() int { return len(f.Samples) }

// ScopeLevels returns the level record of the given scope.
func (f *Frame) ScopeLevels(s Scope) *Levels {
	switch s {
	case ScopeFull:
		return &f.Levels
	case ScopeBass:
		return &f.Bass.Levels
	case ScopeMid:
		return &f.Mid.Levels
	case ScopeHigh:
		return &f.High.Levels
	default:
		panic(fmt.Sprintf("features: unknown scope %v", s))
	}
}

// ScopeSamples returns the sample block the given scope measures.
func (f *Frame) ScopeSamples(s Scope) []float64 {
	switch s {
	case ScopeFull:
		return f.Samples
	case ScopeBass:
		return f.Bass.Samples
	case ScopeMid:
		return f.Mid.Samples
	case ScopeHigh:
		return f.High.Samples
	default:
		panic(fmt.Sprintf("features: unknown scope %v", s))
	}
}

// mustFit panics unless every buffer of f is sized for blocks of n samples.
func (f *Frame) mustFit(n int) {
	switch {
	case len(f.Samples) != n:
		panic(fmt.Sprintf("features: frame has %d samples, session block size is %d", len(f.Samples), n))
	case len(f.Spectrum) != n+2:
		panic(fmt.Sprintf("features: spectrum length %d, want %d", len(f.Spectrum), n+2))
	case len(f.MagnitudeSpectrum) != n/2+1:
		panic(fmt.Sprintf("features: magnitude spectrum length %d, want %d", len(f.MagnitudeSpectrum), n/2+1))
	case len(f.Bass.Samples) != n, len(f.Mid.Samples) != n, len(f.High.Samples) != n:
		panic(fmt.Sprintf("features: band buffers must hold %d samples", n))
	}
}
