package features

import (
	"fmt"

	"github.com/martinblech/rtaudio/dsp/envelope"
)

// Time constants of the tracked envelopes, in seconds.
const (
	SlowTau = 120.0
	MidTau  = 0.75
	FastTau = 0.1
)

// Metric describes one envelope tracked in every scope: which level field
// feeds it, which field it writes, and how it smooths.
type Metric struct {
	Input  Field
	Output Field
	Tau    float64
	Mode   envelope.Mode
}

// TrackedMetrics is the per-scope envelope table. Peaks rise instantly and
// RMS envelopes average, except the slow RMS ceiling which holds its
// maximum.
var TrackedMetrics = [...]Metric{
	{Input: FieldRMS, Output: FieldRMSSlowMax, Tau: SlowTau, Mode: envelope.MaxHold},
	{Input: FieldPeak, Output: FieldPeakSlow, Tau: SlowTau, Mode: envelope.MaxHold},
	{Input: FieldPeak, Output: FieldPeakMid, Tau: MidTau, Mode: envelope.MaxHold},
	{Input: FieldPeak, Output: FieldPeakFast, Tau: FastTau, Mode: envelope.MaxHold},
	{Input: FieldRMS, Output: FieldRMSSlow, Tau: SlowTau, Mode: envelope.Average},
	{Input: FieldRMS, Output: FieldRMSMid, Tau: MidTau, Mode: envelope.Average},
	{Input: FieldRMS, Output: FieldRMSFast, Tau: FastTau, Mode: envelope.Average},
}

type trackedFollower struct {
	scope    Scope
	input    Field
	output   Field
	follower envelope.Follower
}

// EnvelopeTracker updates every tracked envelope of every scope once per
// block.
type EnvelopeTracker struct {
	followers []trackedFollower
}

// NewEnvelopeTracker builds one follower per scope and metric, updated
// blockRate times per second.
func NewEnvelopeTracker(blockRate float64) (*EnvelopeTracker, error) {
	t := &EnvelopeTracker{
		followers: make([]trackedFollower, 0, len(Scopes)*len(TrackedMetrics)),
	}
	for _, s := range Scopes {
		for _, m := range TrackedMetrics {
			f, err := envelope.NewFollower(m.Tau, blockRate, m.Mode)
			if err != nil {
				return nil, fmt.Errorf("features: %v %v follower: %w", s, m.Output, err)
			}
			t.followers = append(t.followers, trackedFollower{
				scope:    s,
				input:    m.Input,
				output:   m.Output,
				follower: *f,
			})
		}
	}
	return t, nil
}

// Len returns the number of followers.
func (t *EnvelopeTracker) Len() int { return len(t.followers) }

// Follower returns the follower writing output in scope, or nil.
func (t *EnvelopeTracker) Follower(scope Scope, output Field) *envelope.Follower {
	for i := range t.followers {
		if tf := &t.followers[i]; tf.scope == scope && tf.output == output {
			return &tf.follower
		}
	}
	return nil
}

// Process implements Stage.
func (t *EnvelopeTracker) Process(f *Frame) {
	for i := range t.followers {
		tf := &t.followers[i]
		l := f.ScopeLevels(tf.scope)
		*l.Ptr(tf.output) = tf.follower.Update(l.Get(tf.input))
	}
}
