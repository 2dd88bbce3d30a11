// Package rotation holds the countdown state machine for the shared court
// timer. Everything here is a pure function over a State value: there is no
// background ticker and no clock access, the caller passes "now" in. Expiry
// is detected lazily by whoever polls Evaluate (the status endpoint and the
// live-update loop), which is what makes pause/resume exact across arbitrary
// gaps between polls.
package rotation

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidDuration rejects durations outside the allowed [0, 60] minute
// range.
var ErrInvalidDuration = errors.New("duration must be between 0 and 60 minutes")

// expiryEpsilon treats a countdown within 100ms of zero as expired, so a
// poll that lands just before the boundary still fires the rotation.
const expiryEpsilon = 100 * time.Millisecond

// State is the singleton timer value. Remaining is stored as an absolute
// duration rather than recomputed from Duration so that stop/start cycles
// preserve the exact leftover time.
type State struct {
	Duration  time.Duration
	Remaining time.Duration
	Running   bool
	StartedAt time.Time
	EndsAt    time.Time
}

// NewState returns an idle timer with the given configured duration.
func NewState(duration time.Duration) State {
	return State{Duration: duration, Remaining: duration}
}

// Start begins or resumes the countdown. A paused timer resumes with its
// remaining time; an exhausted (or restarted) one resets to the configured
// duration.
func Start(s State, now time.Time) State {
	if s.Running || s.Remaining <= 0 {
		s.Remaining = s.Duration
	}
	s.StartedAt = now
	s.EndsAt = now.Add(s.Remaining)
	s.Running = true
	return s
}

// Stop pauses the countdown, freezing the remaining time for a later Start.
func Stop(s State, now time.Time) State {
	if !s.Running {
		return s
	}
	s.Remaining = s.EndsAt.Sub(now)
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	s.Running = false
	s.StartedAt = time.Time{}
	s.EndsAt = time.Time{}
	return s
}

// Reset forces the timer back to idle at the full configured duration.
func Reset(s State) State {
	s.Running = false
	s.Remaining = s.Duration
	s.StartedAt = time.Time{}
	s.EndsAt = time.Time{}
	return s
}

// SetDuration reconfigures the timer. Changing the duration always cancels
// an in-progress countdown.
func SetDuration(s State, minutes float64) (State, error) {
	if minutes < 0 || minutes > 60 {
		return s, ErrInvalidDuration
	}
	seconds := math.Round(minutes * 60)
	s.Duration = time.Duration(seconds) * time.Second
	s.Remaining = s.Duration
	s.Running = false
	s.StartedAt = time.Time{}
	s.EndsAt = time.Time{}
	return s, nil
}

// Evaluate computes the countdown at "now". When the remaining time falls
// within the expiry epsilon it returns the post-expiry idle state and
// expired=true; the caller is responsible for running the court rotation
// atomically with adopting the new state.
func Evaluate(s State, now time.Time) (State, bool) {
	if !s.Running || s.StartedAt.IsZero() {
		return s, false
	}
	elapsed := now.Sub(s.StartedAt)
	remaining := s.Remaining - elapsed
	if remaining <= expiryEpsilon {
		s.Running = false
		s.Remaining = 0
		s.StartedAt = time.Time{}
		s.EndsAt = time.Time{}
		return s, true
	}
	return s, false
}

// RemainingAt reports how much countdown is left at "now" without mutating
// anything; for an idle timer that is simply the stored remaining time.
func RemainingAt(s State, now time.Time) time.Duration {
	if !s.Running || s.StartedAt.IsZero() {
		return s.Remaining
	}
	remaining := s.Remaining - now.Sub(s.StartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
