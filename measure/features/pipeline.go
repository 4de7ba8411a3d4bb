package features

import (
	"github.com/martinblech/rtaudio/dsp/core"
)

// Pipeline runs the fixed stage sequence over one frame per block.
// It is not safe for concurrent use.
type Pipeline struct {
	cfg    core.ProcessorConfig
	stages []Stage
}

// NewPipeline builds a session pipeline. Without options it uses the capture
// defaults of 44100 Hz and 512-sample blocks.
func NewPipeline(opts ...core.ProcessorOption) (*Pipeline, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transform, err := NewSpectralTransform(cfg.BlockSize)
	if err != nil {
		return nil, err
	}

	splitter, err := NewBandSplitter(cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	tracker, err := NewEnvelopeTracker(cfg.BlockRate())
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg: cfg,
		stages: []Stage{
			transform,
			splitter,
			LevelExtractor{},
			tracker,
			Normalizer{},
		},
	}, nil
}

// Config returns the session configuration.
func (p *Pipeline) Config() core.ProcessorConfig { return p.cfg }

// NewFrame allocates a frame sized for this session.
func (p *Pipeline) NewFrame() *Frame { return NewFrame(p.cfg.BlockSize) }

// Process runs every stage over f. f.Samples must hold the next block in
// capture order. It panics if f is not sized for the session.
func (p *Pipeline) Process(f *Frame) {
	f.mustFit(p.cfg.BlockSize)
	for _, s := range p.stages {
		s.Process(f)
	}
}
