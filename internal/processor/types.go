package processor

import (
	"sync"
	"time"

	"github.com/brianxchen/badminton-queue/internal/board"
	"github.com/brianxchen/badminton-queue/internal/club"
	"github.com/brianxchen/badminton-queue/internal/metrics"
	"github.com/brianxchen/badminton-queue/internal/rotation"
)

// Processor owns the board, the rotation timer and the club gate behind a
// single mutex. Every stateful operation runs under that lock, which is what
// keeps rotation atomic with respect to concurrent joins and leaves: no
// caller can ever observe a half-rotated court.
type Processor struct {
	mu sync.Mutex

	board        *board.Board
	timer        rotation.State
	clubActive   bool
	clubModified time.Time

	// gateMutations decides whether an inactive club rejects non-admin
	// mutations, or only hides the board. Defaults to visibility-only.
	gateMutations bool

	store   club.MemberStore
	metrics metrics.Metrics
	now     func() time.Time
}

// Caller identifies who is performing an operation. Resolved once at the
// HTTP boundary; everything below works with this value, never a raw
// username-or-object.
type Caller struct {
	Username string
	IsAdmin  bool
}

// TimerStatus is the poll payload. Remaining is whole seconds, matching
// what clients render.
type TimerStatus struct {
	Running   bool           `json:"running"`
	Remaining int            `json:"remaining"`
	Expired   bool           `json:"expired"`
	Courts    board.Snapshot `json:"courts"`
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithMutationGate makes an inactive club reject non-admin mutations
// instead of only hiding the board.
func WithMutationGate() Option {
	return func(p *Processor) { p.gateMutations = true }
}
