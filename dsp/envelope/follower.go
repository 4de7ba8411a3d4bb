package envelope

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when a follower cannot be constructed.
var ErrInvalidParams = errors.New("envelope: invalid parameters")

// Mode selects how a follower responds to rising input.
type Mode int

const (
	// Average always moves exponentially toward the input.
	Average Mode = iota
	// MaxHold rises instantly and decays exponentially.
	MaxHold
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Average:
		return "average"
	case MaxHold:
		return "maxhold"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// State is the follower's two-state lifecycle.
type State int

const (
	// Uninitialized means no input has been observed yet.
	Uninitialized State = iota
	// Tracking means the follower holds a value.
	Tracking
)

// String returns the state name.
func (s State) String() string {
	if s == Tracking {
		return "tracking"
	}
	return "uninitialized"
}

// Alpha returns the smoothing coefficient for time constant tau (seconds) at
// the given update rate (updates per second).
func Alpha(tau, rate float64) float64 {
	return 1 - math.Exp(-1/(rate*tau))
}

// Follower is a one-pole envelope follower. The zero value is not usable;
// construct with [NewFollower].
type Follower struct {
	alpha float64
	mode  Mode
	state State
	value float64
}

// NewFollower creates a follower with time constant tau seconds, updated
// rate times per second.
func NewFollower(tau, rate float64, mode Mode) (*Follower, error) {
	if !(tau > 0) || math.IsInf(tau, 0) {
		return nil, fmt.Errorf("%w: time constant must be finite and > 0: %v", ErrInvalidParams, tau)
	}
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: update rate must be finite and > 0: %v", ErrInvalidParams, rate)
	}
	if mode != Average && mode != MaxHold {
		return nil, fmt.Errorf("%w: unknown mode %v", ErrInvalidParams, mode)
	}

	return &Follower{alpha: Alpha(tau, rate), mode: mode}, nil
}

// Update feeds one observation and returns the new smoothed value.
func (f *Follower) Update(v float64) float64 {
	switch {
	case f.state == Uninitialized:
		f.state = Tracking
		f.value = v
	case f.mode == MaxHold && v > f.value:
		f.value = v
	default:
		f.value += f.alpha * (v - f.value)
	}

	return f.value
}

// Value returns the smoothed value and whether the follower is tracking.
// An uninitialized follower reports (0, false).
func (f *Follower) Value() (float64, bool) {
	return f.value, f.state == Tracking
}

// State returns the lifecycle state.
func (f *Follower) State() State { return f.state }

// Alpha returns the smoothing coefficient.
func (f *Follower) Alpha() float64 { return f.alpha }

// Mode returns the follower mode.
func (f *Follower) Mode() Mode { return f.mode }

// Reset returns the follower to the uninitialized state.
func (f *Follower) Reset() {
	f.state = Uninitialized
	f.value = 0
}
