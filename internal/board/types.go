package board

// Mode selects which ledger variant the board runs. In singles mode the
// queue is a flat FIFO of players; in groups mode players occupy seats in
// multi-seat groups that move between queue and court as a unit.
type Mode string

const (
	ModeSingles Mode = "singles"
	ModeGroups  Mode = "groups"
)

// AssignmentKind says where a player currently is.
type AssignmentKind string

const (
	KindCourt AssignmentKind = "court"
	KindQueue AssignmentKind = "queue"
	KindGroup AssignmentKind = "group"
)

// Assignment is the per-player back-reference enforcing the
// one-assignment-at-a-time rule. A player holds at most one.
type Assignment struct {
	Court string
	Kind  AssignmentKind
	Group string // group ID when Kind == KindGroup
}

// Group is a court-scoped container of up to capacity players. Empty groups
// are placeholders; they survive only until the next settling operation.
type Group struct {
	ID      string
	Court   string
	Members []string
	InQueue bool
}

// Court owns its occupants and its ordered queue. Queue positions are the
// 1-based indices into the slice, so they are dense by construction.
type Court struct {
	Name      string
	occupants []string
	queue     []string
	groups    []*Group
}

// Board is the in-memory aggregate for the whole club: the fixed court
// registry, the membership index and the queue/group ledger. It holds no
// locks and performs no I/O; callers are expected to serialize access
// (the processor wraps every operation in a single mutex).
type Board struct {
	mode     Mode
	capacity int
	courts   []*Court
	byName   map[string]*Court
	index    map[string]Assignment
}

// Config describes the fixed shape of the board, decided once at startup.
type Config struct {
	Courts   []string
	Capacity int
	Mode     Mode
}

// RotationResult reports what a full-board rotation did, for logging and
// metrics.
type RotationResult struct {
	Evicted  []string
	Promoted []string
}

// New builds the court registry. Courts are created once and never
// destroyed.
func New(cfg Config) *Board {
	b := &Board{
		mode:     cfg.Mode,
		capacity: cfg.Capacity,
		byName:   make(map[string]*Court, len(cfg.Courts)),
		index:    make(map[string]Assignment),
	}
	if b.mode == "" {
		b.mode = ModeSingles
	}
	for _, name := range cfg.Courts {
		c := &Court{Name: name}
		b.courts = append(b.courts, c)
		b.byName[name] = c
	}
	return b
}

// Capacity returns the per-court player limit.
func (b *Board) Capacity() int { return b.capacity }

// Mode returns the ledger variant the board was built with.
func (b *Board) Mode() Mode { return b.mode }

// CourtNames returns the registry in creation order.
func (b *Board) CourtNames() []string {
	names := make([]string, 0, len(b.courts))
	for _, c := range b.courts {
		names = append(names, c.Name)
	}
	return names
}

// ActiveAssignment reports where a player currently is, in O(1).
func (b *Board) ActiveAssignment(user string) (Assignment, bool) {
	a, ok := b.index[user]
	return a, ok
}
