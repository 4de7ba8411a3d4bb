package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
)

// DefaultQueueBlocks is the number of decoded blocks a PCMSource buffers
// before it starts dropping the oldest.
const DefaultQueueBlocks = 4

const bytesPerSample = 4

// PCMSource decodes mono little-endian float32 PCM from a reader.
//
// A background goroutine reads ahead into a bounded queue. When the queue is
// full the oldest block is discarded and the next block handed out reports
// an overflow. A short final block is zero-padded, after which ReadBlock
// returns io.EOF. Read errors other than EOF are returned once the queue has
// drained.
type PCMSource struct {
	r         io.Reader
	blockSize int

	queue    chan []float64
	free     chan []float64
	done     chan struct{}
	overflow atomic.Bool
	err      error // set before queue is closed

	closeOnce sync.Once
	closeErr  error
}

// PCMOption configures a PCMSource.
type PCMOption func(*pcmOptions)

type pcmOptions struct {
	queueBlocks int
}

// WithQueueBlocks sets the read-ahead depth. Values below 1 are ignored.
func WithQueueBlocks(n int) PCMOption {
	return func(o *pcmOptions) {
		if n > 0 {
			o.queueBlocks = n
		}
	}
}

// NewPCMSource starts decoding r into blocks of blockSize samples.
func NewPCMSource(r io.Reader, blockSize int, opts ...PCMOption) (*PCMSource, error) {
	if r == nil {
		return nil, errors.New("stream: nil PCM reader")
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be > 0: %d", ErrBlockSize, blockSize)
	}
	o := pcmOptions{queueBlocks: DefaultQueueBlocks}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s := &PCMSource{
		r:         r,
		blockSize: blockSize,
		queue:     make(chan []float64, o.queueBlocks),
		free:      make(chan []float64, o.queueBlocks+1),
		done:      make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// BlockSize returns the number of samples per block.
func (s *PCMSource) BlockSize() int { return s.blockSize }

func (s *PCMSource) readLoop() {
	defer close(s.queue)

	raw := make([]byte, s.blockSize*bytesPerSample)
	for {
		n, err := io.ReadFull(s.r, raw)
		switch {
		case err == nil:
		case errors.Is(err, io.ErrUnexpectedEOF):
			clear(raw[n:])
		case errors.Is(err, io.EOF):
			return
		default:
			select {
			case <-s.done:
			default:
				s.err = fmt.Errorf("stream: read PCM: %w", err)
			}
			return
		}

		block := s.block()
		decodeFloat32LE(block, raw)
		if !s.push(block) {
			return
		}
		if n < len(raw) {
			return
		}
	}
}

// block returns a recycled block buffer or allocates one.
func (s *PCMSource) block() []float64 {
	select {
	case b := <-s.free:
		return b
	default:
		return make([]float64, s.blockSize)
	}
}

func (s *PCMSource) recycle(b []float64) {
	select {
	case s.free <- b:
	default:
	}
}

// push enqueues b, discarding the oldest queued block while the queue is
// full. It reports false once the source is closed.
func (s *PCMSource) push(b []float64) bool {
	for {
		select {
		case <-s.done:
			return false
		case s.queue <- b:
			return true
		default:
		}
		select {
		case old := <-s.queue:
			s.overflow.Store(true)
			s.recycle(old)
		default:
		}
	}
}

// ReadBlock implements Source.
func (s *PCMSource) ReadBlock(ctx context.Context, dst []float64) (bool, error) {
	if len(dst) != s.blockSize {
		return false, fmt.Errorf("%w: got %d, want %d", ErrBlockSize, len(dst), s.blockSize)
	}
	select {
	case b, ok := <-s.queue:
		if !ok {
			if s.err != nil {
				return false, s.err
			}
			return false, io.EOF
		}
		copy(dst, b)
		s.recycle(b)
		return s.overflow.Swap(false), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Close stops the reader goroutine. If the underlying reader is an
// io.Closer it is closed too, which unblocks a pending read.
func (s *PCMSource) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		if c, ok := s.r.(io.Closer); ok {
			s.closeErr = c.Close()
		}
	})
	return s.closeErr
}

func decodeFloat32LE(dst []float64, raw []byte) {
	for i := range dst {
		dst[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*bytesPerSample:])))
	}
}
