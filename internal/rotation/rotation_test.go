package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

func TestNewStateIsIdle(t *testing.T) {
	s := NewState(15 * time.Minute)
	assert.False(t, s.Running)
	assert.Equal(t, 15*time.Minute, s.Duration)
	assert.Equal(t, 15*time.Minute, s.Remaining)
}

func TestStartFromIdleCountsFromFullDuration(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)
	assert.True(t, s.Running)
	assert.Equal(t, t0.Add(15*time.Minute), s.EndsAt)
	assert.Equal(t, 15*time.Minute, RemainingAt(s, t0))
	assert.Equal(t, 10*time.Minute, RemainingAt(s, t0.Add(5*time.Minute)))
}

func TestStopFreezesRemaining(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)
	s = Stop(s, t0.Add(6*time.Minute))

	assert.False(t, s.Running)
	assert.Equal(t, 9*time.Minute, s.Remaining)

	// Remaining does not drain while paused.
	assert.Equal(t, 9*time.Minute, RemainingAt(s, t0.Add(2*time.Hour)))

	// Stop on an idle timer is a no-op.
	s2 := Stop(s, t0.Add(3*time.Hour))
	assert.Equal(t, s, s2)
}

func TestStartResumesPausedCountdown(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)
	s = Stop(s, t0.Add(6*time.Minute))

	resumedAt := t0.Add(30 * time.Minute)
	s = Start(s, resumedAt)
	assert.True(t, s.Running)
	assert.Equal(t, resumedAt.Add(9*time.Minute), s.EndsAt)
}

func TestStartAfterExhaustionResets(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)
	s, expired := Evaluate(s, t0.Add(15*time.Minute))
	require.True(t, expired)
	require.Equal(t, time.Duration(0), s.Remaining)

	s = Start(s, t0.Add(20*time.Minute))
	assert.Equal(t, 15*time.Minute, RemainingAt(s, t0.Add(20*time.Minute)))
}

func TestStartWhileRunningRestartsFromFullDuration(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)
	s = Start(s, t0.Add(5*time.Minute))
	assert.Equal(t, 15*time.Minute, RemainingAt(s, t0.Add(5*time.Minute)))
}

func TestResetReturnsToFullDuration(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)
	s = Reset(s)
	assert.False(t, s.Running)
	assert.Equal(t, 15*time.Minute, s.Remaining)
}

func TestSetDuration(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)

	s, err := SetDuration(s, 10)
	require.NoError(t, err)
	assert.False(t, s.Running, "changing the duration cancels the countdown")
	assert.Equal(t, 10*time.Minute, s.Duration)
	assert.Equal(t, 10*time.Minute, s.Remaining)

	// Fractional minutes round to whole seconds.
	s, err = SetDuration(s, 0.505)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, s.Duration)

	_, err = SetDuration(s, -0.1)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = SetDuration(s, 60.1)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Zero is allowed and the boundary value 60 is inclusive.
	s, err = SetDuration(s, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), s.Duration)
	_, err = SetDuration(s, 60)
	assert.NoError(t, err)
}

func TestEvaluateExpiry(t *testing.T) {
	s := Start(NewState(15*time.Minute), t0)

	s, expired := Evaluate(s, t0.Add(10*time.Minute))
	assert.False(t, expired)
	assert.True(t, s.Running)

	// Within the epsilon of zero counts as expired.
	s2, expired := Evaluate(s, t0.Add(15*time.Minute-50*time.Millisecond))
	assert.True(t, expired)
	assert.False(t, s2.Running)
	assert.Equal(t, time.Duration(0), s2.Remaining)

	// Just outside the epsilon does not.
	_, expired = Evaluate(s, t0.Add(15*time.Minute-200*time.Millisecond))
	assert.False(t, expired)

	// An idle timer never expires.
	_, expired = Evaluate(s2, t0.Add(time.Hour))
	assert.False(t, expired)
}

func TestRemainingAtClampsToZero(t *testing.T) {
	s := Start(NewState(time.Minute), t0)
	assert.Equal(t, time.Duration(0), RemainingAt(s, t0.Add(2*time.Minute)))
}
