package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/martinblech/rtaudio/dsp/core"
	"github.com/martinblech/rtaudio/dsp/signal"
)

// ErrBlockSize is returned when a read buffer does not match the source's
// block size.
var ErrBlockSize = errors.New("stream: block size mismatch")

// Source produces consecutive mono blocks.
//
// ReadBlock fills dst with the next block. overflowed reports that input was
// dropped before this block. A finished source returns io.EOF. ReadBlock
// honours ctx cancellation and deadlines.
type Source interface {
	ReadBlock(ctx context.Context, dst []float64) (overflowed bool, err error)
}

// SignalSource emits a synthetic oscillator in real time.
type SignalSource struct {
	osc       signal.Oscillator
	blockSize int
	period    time.Duration
	pace      bool
	limit     int
	read      int
	ticker    *time.Ticker
}

// SignalOption configures a SignalSource.
type SignalOption func(*SignalSource)

// WithoutPacing makes ReadBlock return immediately instead of waiting one
// block duration per call.
func WithoutPacing() SignalOption {
	return func(s *SignalSource) {
		s.pace = false
	}
}

// WithBlockLimit ends the source with io.EOF after n blocks. n <= 0 means
// unlimited.
func WithBlockLimit(n int) SignalOption {
	return func(s *SignalSource) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewSignalSource wraps osc as a source of cfg.BlockSize blocks paced at
// cfg.BlockDuration.
func NewSignalSource(osc signal.Oscillator, cfg core.ProcessorConfig, opts ...SignalOption) (*SignalSource, error) {
	if osc == nil {
		return nil, errors.New("stream: nil oscillator")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &SignalSource{
		osc:       osc,
		blockSize: cfg.BlockSize,
		period:    time.Duration(cfg.BlockDuration() * float64(time.Second)),
		pace:      true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ReadBlock implements Source.
func (s *SignalSource) ReadBlock(ctx context.Context, dst []float64) (bool, error) {
	if len(dst) != s.blockSize {
		return false, fmt.Errorf("%w: got %d, want %d", ErrBlockSize, len(dst), s.blockSize)
	}
	if s.limit > 0 && s.read >= s.limit {
		return false, io.EOF
	}
	if s.pace {
		if s.ticker == nil {
			s.ticker = time.NewTicker(s.period)
		}
		select {
		case <-s.ticker.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return false, err
	}
	s.osc.Fill(dst)
	s.read++
	return false, nil
}

// Close stops the pacing ticker.
func (s *SignalSource) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	return nil
}
