package processor

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brianxchen/badminton-queue/internal/board"
	"github.com/brianxchen/badminton-queue/internal/club"
	"github.com/brianxchen/badminton-queue/internal/metrics"
	"github.com/brianxchen/badminton-queue/internal/rotation"
)

// ErrClubClosed rejects non-admin mutations while the club is inactive and
// the mutation gate is enabled.
var ErrClubClosed = errors.New("club is not active")

// New builds a Processor, loading the configured timer duration and club
// state from the store so a restart picks up where it left off.
func New(b *board.Board, store club.MemberStore, metricsSvc metrics.Metrics, opts ...Option) *Processor {
	p := &Processor{
		board:   b,
		store:   store,
		metrics: metricsSvc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	duration, err := store.TimerDuration()
	if err != nil {
		log.Error("Failed to load timer duration, using default", "error", err)
		duration = 15 * time.Minute
	}
	p.timer = rotation.NewState(duration)

	cs, err := store.ClubState()
	if err != nil {
		log.Error("Failed to load club state, assuming inactive", "error", err)
	}
	p.clubActive = cs.IsActive
	p.clubModified = cs.LastModified
	return p
}

// gate applies the optional club-closed mutation gate.
func (p *Processor) gate(caller Caller) error {
	if p.gateMutations && !p.clubActive && !caller.IsAdmin {
		return ErrClubClosed
	}
	return nil
}

// JoinCourt places the caller directly on a court with free capacity.
func (p *Processor) JoinCourt(caller Caller, court string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.gate(caller); err != nil {
		return err
	}
	if err := p.board.JoinCourt(caller.Username, court); err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return err
	}
	p.metrics.IncJoins()
	log.Info("Player joined court", "user", caller.Username, "court", court)
	return nil
}

// JoinQueue appends the caller to a court's queue.
func (p *Processor) JoinQueue(caller Caller, court string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.gate(caller); err != nil {
		return err
	}
	if err := p.board.JoinQueue(caller.Username, court); err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return err
	}
	p.metrics.IncJoins()
	log.Info("Player joined queue", "user", caller.Username, "court", court)
	return nil
}

// Leave removes the caller's assignment. Court occupancy cannot be vacated
// while the timer runs; a successful vacate promotes from the queue.
func (p *Processor) Leave(caller Caller, court string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.gate(caller); err != nil {
		return err
	}
	promoted, err := p.board.Leave(caller.Username, court, p.timer.Running)
	if err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return err
	}
	p.metrics.IncPromotions(len(promoted))
	log.Info("Player left", "user", caller.Username, "court", court, "promoted", promoted)
	return nil
}

// CreateGroup adds an empty group to a court (group mode only).
func (p *Processor) CreateGroup(caller Caller, court string, inQueue bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.gate(caller); err != nil {
		return "", err
	}
	id, err := p.board.CreateGroup(court, inQueue)
	if err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return "", err
	}
	log.Info("Group created", "court", court, "group", id, "in_queue", inQueue)
	return id, nil
}

// JoinSlot seats the caller in a group (group mode only).
func (p *Processor) JoinSlot(caller Caller, groupID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.gate(caller); err != nil {
		return err
	}
	if err := p.board.JoinSlot(caller.Username, groupID); err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return err
	}
	p.metrics.IncJoins()
	log.Info("Player joined group slot", "user", caller.Username, "group", groupID)
	return nil
}

// MovePlayer reseats a player into another group. Admin-gated at the HTTP
// layer.
func (p *Processor) MovePlayer(user, toGroupID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.board.MovePlayer(user, toGroupID); err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return err
	}
	log.Info("Player moved", "user", user, "group", toGroupID)
	return nil
}

// RemovePlayer unseats a player from their group. Admin-gated at the HTTP
// layer.
func (p *Processor) RemovePlayer(user string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.board.RemovePlayer(user); err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return err
	}
	log.Info("Player removed from group", "user", user)
	return nil
}

// RemoveQueueGroup deletes a queue group; its members become unassigned.
// Admin-gated at the HTTP layer.
func (p *Processor) RemoveQueueGroup(groupID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.board.RemoveQueueGroup(groupID); err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return err
	}
	log.Info("Queue group removed", "group", groupID)
	return nil
}

// Groups lists a court's groups (group mode only).
func (p *Processor) Groups(court string) ([]*board.Group, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.board.Groups(court)
}

// ClearCourts wipes all occupancy and queues. Admin-gated at the HTTP layer.
func (p *Processor) ClearCourts() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.board.ClearCourts()
	log.Info("All courts cleared")
}

// DropUser removes a deleted member from wherever they were on the board.
func (p *Processor) DropUser(username string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.board.RemoveUser(username) {
		log.Info("Removed deleted member from board", "user", username)
	}
}

// TimerStart begins or resumes the countdown.
func (p *Processor) TimerStart() TimerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timer = rotation.Start(p.timer, p.now())
	log.Info("Timer started", "remaining", p.timer.Remaining)
	return p.statusLocked(false)
}

// TimerStop pauses the countdown, preserving the remaining time.
func (p *Processor) TimerStop() TimerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timer = rotation.Stop(p.timer, p.now())
	log.Info("Timer stopped", "remaining", p.timer.Remaining)
	return p.statusLocked(false)
}

// TimerReset forces the countdown back to the full configured duration.
func (p *Processor) TimerReset() TimerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timer = rotation.Reset(p.timer)
	log.Info("Timer reset", "duration", p.timer.Duration)
	return p.statusLocked(false)
}

// TimerSetDuration reconfigures the countdown length, cancelling any
// in-progress countdown. The new duration is persisted.
func (p *Processor) TimerSetDuration(minutes float64) (TimerStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := rotation.SetDuration(p.timer, minutes)
	if err != nil {
		p.metrics.IncRejections(rejectionReason(err))
		return p.statusLocked(false), err
	}
	p.timer = next
	if err := p.store.SetTimerDuration(p.timer.Duration); err != nil {
		log.Error("Failed to persist timer duration", "error", err)
	}
	log.Info("Timer duration set", "duration", p.timer.Duration)
	return p.statusLocked(false), nil
}

// TimerStatusNow evaluates the countdown and is the sole expiry trigger:
// when the remaining time crosses the epsilon the rotation runs here, under
// the same lock, before the status is returned.
func (p *Processor) TimerStatusNow() TimerStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, expired := rotation.Evaluate(p.timer, p.now())
	p.timer = next
	if !expired {
		return p.statusLocked(false)
	}

	log.Info("Timer expired, rotating players")
	res := p.board.RotateAll()
	p.metrics.IncRotations()
	p.metrics.IncPromotions(len(res.Promoted))
	log.Info("Rotation complete", "evicted", len(res.Evicted), "promoted", len(res.Promoted))
	return p.statusLocked(true)
}

func (p *Processor) statusLocked(expired bool) TimerStatus {
	return TimerStatus{
		Running:   p.timer.Running,
		Remaining: int(rotation.RemainingAt(p.timer, p.now()) / time.Second),
		Expired:   expired,
		Courts:    p.board.Snapshot(),
	}
}

// Snapshot returns a deep copy of the board for rendering or streaming.
func (p *Processor) Snapshot() board.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.board.Snapshot()
}

// ToggleClub flips the club open/closed flag and persists it.
func (p *Processor) ToggleClub() club.ClubState {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clubActive = !p.clubActive
	p.clubModified = p.now()
	if err := p.store.SetClubActive(p.clubActive, p.clubModified); err != nil {
		log.Error("Failed to persist club state", "error", err)
	}
	log.Info("Club status toggled", "is_active", p.clubActive)
	return club.ClubState{IsActive: p.clubActive, LastModified: p.clubModified}
}

// ClubStatus reports the current gate state.
func (p *Processor) ClubStatus() club.ClubState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return club.ClubState{IsActive: p.clubActive, LastModified: p.clubModified}
}

// VisibleTo reports whether the board is visible to the caller: the club is
// open, or the caller is an admin.
func (p *Processor) VisibleTo(caller Caller) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clubActive || caller.IsAdmin
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, board.ErrCourtFull), errors.Is(err, board.ErrGroupFull):
		return "full"
	case errors.Is(err, board.ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, board.ErrAlreadyQueued):
		return "already_queued"
	case errors.Is(err, board.ErrNotAssigned):
		return "not_assigned"
	case errors.Is(err, board.ErrTimerRunning):
		return "timer_running"
	case errors.Is(err, rotation.ErrInvalidDuration):
		return "invalid_duration"
	case errors.Is(err, board.ErrCourtNotFound), errors.Is(err, board.ErrGroupNotFound):
		return "not_found"
	default:
		return "other"
	}
}
