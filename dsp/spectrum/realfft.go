package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidSize is returned when a transform size cannot be planned.
var ErrInvalidSize = errors.New("spectrum: invalid transform size")

// RealFFT computes the forward transform of fixed-size real blocks.
// It owns its scratch memory and is not safe for concurrent use.
type RealFFT struct {
	n    int
	plan *algofft.Plan[complex128]
	buf  []complex128
	re   []float64
	im   []float64
}

// NewRealFFT plans a forward transform for blocks of n samples. n must be
// positive and even.
func NewRealFFT(n int) (*RealFFT, error) {
	if n <= 0 || n%2 != 0 {
		return nil, fmt.Errorf("%w: %d (must be positive and even)", ErrInvalidSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan of size %d: %w", n, err)
	}

	bins := n/2 + 1

	return &RealFFT{
		n:    n,
		plan: plan,
		buf:  make([]complex128, n),
		re:   make([]float64, bins),
		im:   make([]float64, bins),
	}, nil
}

// Size returns the block size n.
func (f *RealFFT) Size() int { return f.n }

// PackedLen returns the length of a packed spectrum, n+2.
func (f *RealFFT) PackedLen() int { return f.n + 2 }

// Bins returns the number of magnitude bins, n/2+1.
func (f *RealFFT) Bins() int { return f.n/2 + 1 }

// Forward transforms src (n samples) into the packed spectrum dst (n+2
// values). It panics if either length is wrong.
//
// dst[n] holds the signed real part of the Nyquist term, so it can be
// negative. Consumers that expect a non-negative Nyquist value must take
// its absolute value; [RealFFT.Magnitude] already does.
func (f *RealFFT) Forward(dst, src []float64) {
	if len(src) != f.n {
		panic(fmt.Sprintf("spectrum: Forward source length %d, want %d", len(src), f.n))
	}
	if len(dst) != f.n+2 {
		panic(fmt.Sprintf("spectrum: Forward destination length %d, want %d", len(dst), f.n+2))
	}

	for i, x := range src {
		f.buf[i] = complex(x, 0)
	}

	// A plan of matching size cannot fail on correctly sized buffers.
	if err := f.plan.Forward(f.buf, f.buf); err != nil {
		panic(fmt.Sprintf("spectrum: forward FFT failed: %v", err))
	}

	half := f.n / 2
	for k := range half {
		dst[2*k] = real(f.buf[k])
		dst[2*k+1] = imag(f.buf[k])
	}
	dst[1] = 0
	dst[f.n] = real(f.buf[half])
	dst[f.n+1] = 0
}

// Magnitude writes |X[k]| for k in [0, n/2] from the packed spectrum into
// dst. It panics if dst is not n/2+1 long or packed is not n+2 long.
func (f *RealFFT) Magnitude(dst, packed []float64) {
	if len(packed) != f.n+2 {
		panic(fmt.Sprintf("spectrum: Magnitude packed length %d, want %d", len(packed), f.n+2))
	}
	if len(dst) != len(f.re) {
		panic(fmt.Sprintf("spectrum: Magnitude destination length %d, want %d", len(dst), len(f.re)))
	}

	for k := range f.re {
		f.re[k] = packed[2*k]
		f.im[k] = packed[2*k+1]
	}

	vecmath.Magnitude(dst, f.re, f.im)
}
