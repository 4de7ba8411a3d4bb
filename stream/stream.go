package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/martinblech/rtaudio/internal/observe"
	"github.com/martinblech/rtaudio/measure/features"
)

// DefaultReadTimeout is how long Run waits for a block before giving up.
const DefaultReadTimeout = time.Second

var (
	// ErrTimeout is returned by Run when the source delivers no block within
	// the read timeout.
	ErrTimeout = errors.New("stream: timed out waiting for audio")

	// ErrRunning is returned by Run when the stream is already running.
	ErrRunning = errors.New("stream: already running")
)

// BlockInfo describes the block a frame was computed from.
type BlockInfo struct {
	// Index counts blocks from 0 in capture order.
	Index uint64
	// Overflowed reports that input was dropped before this block.
	Overflowed bool
	// SampleRate is the session sample rate in Hz.
	SampleRate float64
}

// Handler receives each processed frame. The frame is reused for the next
// block, so a handler that keeps data must copy it, for example with
// NewMessage.
type Handler func(f *features.Frame, info BlockInfo)

// Stream pulls blocks from a Source through a Pipeline.
type Stream struct {
	pipeline *features.Pipeline
	source   Source
	handler  Handler
	frame    *features.Frame

	timeout time.Duration
	logger  *slog.Logger
	metrics *observe.Metrics

	running   atomic.Bool
	processed atomic.Uint64
	lastBlock atomic.Int64 // unix nanos
}

// Option configures a Stream.
type Option func(*Stream)

// WithReadTimeout sets how long Run waits for each block. d <= 0 disables
// the timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Stream) {
		s.timeout = d
	}
}

// WithLogger sets the stream logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stream) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records block, overflow, timeout and level metrics to m.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Stream) {
		s.metrics = m
	}
}

// New creates a stream. handler may be nil.
func New(p *features.Pipeline, src Source, handler Handler, opts ...Option) *Stream {
	s := &Stream{
		pipeline: p,
		source:   src,
		handler:  handler,
		frame:    p.NewFrame(),
		timeout:  DefaultReadTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = s.logger.With("component", "stream")
	return s
}

// Processed returns the number of blocks processed so far.
func (s *Stream) Processed() uint64 { return s.processed.Load() }

// LastBlock returns when the most recent block was processed, or the zero
// time if none has been.
func (s *Stream) LastBlock() time.Time {
	ns := s.lastBlock.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Run processes blocks until ctx is cancelled or the source ends, both of
// which return nil. A stalled source yields ErrTimeout and any other source
// failure is returned wrapped.
func (s *Stream) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer s.running.Store(false)

	cfg := s.pipeline.Config()
	s.logger.Info("stream started",
		"sample_rate", cfg.SampleRate,
		"block_size", cfg.BlockSize,
		"read_timeout", s.timeout,
	)

	for index := uint64(0); ; index++ {
		overflowed, err := s.read(ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			s.logger.Info("source finished", "blocks", index)
			return nil
		case ctx.Err() != nil:
			s.logger.Info("stream stopped", "blocks", index)
			return nil
		case errors.Is(err, context.DeadlineExceeded):
			if s.metrics != nil {
				s.metrics.ReadTimeouts.Add(ctx, 1)
			}
			return fmt.Errorf("%w: over %s", ErrTimeout, s.timeout)
		default:
			return fmt.Errorf("stream: block %d: %w", index, err)
		}

		start := time.Now()
		s.pipeline.Process(s.frame)
		elapsed := time.Since(start)

		if overflowed {
			s.logger.Warn("input overflowed", "block", index)
			if s.metrics != nil {
				s.metrics.Overflows.Add(ctx, 1)
			}
		}
		s.record(ctx, elapsed)
		s.processed.Add(1)
		s.lastBlock.Store(time.Now().UnixNano())

		if s.handler != nil {
			s.handler(s.frame, BlockInfo{
				Index:      index,
				Overflowed: overflowed,
				SampleRate: cfg.SampleRate,
			})
		}
	}
}

func (s *Stream) read(ctx context.Context) (bool, error) {
	if s.timeout <= 0 {
		return s.source.ReadBlock(ctx, s.frame.Samples)
	}
	readCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.source.ReadBlock(readCtx, s.frame.Samples)
}

func (s *Stream) record(ctx context.Context, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.ProcessDuration.Record(ctx, elapsed.Seconds())
	s.metrics.Blocks.Add(ctx, 1)
	for _, scope := range features.Scopes {
		l := s.frame.ScopeLevels(scope)
		s.metrics.Level.Record(ctx, l.RMS, metric.WithAttributes(
			attribute.String("scope", scope.String()),
			attribute.String("stat", "rms"),
		))
		s.metrics.Level.Record(ctx, l.Peak, metric.WithAttributes(
			attribute.String("scope", scope.String()),
			attribute.String("stat", "peak"),
		))
	}
}
