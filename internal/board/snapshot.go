package board

// Snapshot is a deep copy of the visible board state, safe to hand to the
// live-update hub or serialize in a response while mutations continue.
type Snapshot struct {
	Courts []CourtSnapshot `json:"courts" msgpack:"courts"`
}

type CourtSnapshot struct {
	Name     string          `json:"name" msgpack:"name"`
	Capacity int             `json:"capacity" msgpack:"capacity"`
	Players  []string        `json:"players" msgpack:"players"`
	Queue    []string        `json:"queue" msgpack:"queue"`
	Groups   []GroupSnapshot `json:"groups,omitempty" msgpack:"groups,omitempty"`
}

type GroupSnapshot struct {
	ID       string   `json:"id" msgpack:"id"`
	Members  []string `json:"members" msgpack:"members"`
	Filled   int      `json:"filled" msgpack:"filled"`
	Capacity int      `json:"capacity" msgpack:"capacity"`
	InQueue  bool     `json:"in_queue" msgpack:"in_queue"`
	Position int      `json:"position" msgpack:"position"`
}

// Snapshot copies the current board state. Queue order in the payload is
// front to back, so a client can render positions as index+1.
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{Courts: make([]CourtSnapshot, 0, len(b.courts))}
	for _, c := range b.courts {
		cs := CourtSnapshot{
			Name:     c.Name,
			Capacity: b.capacity,
			Players:  append([]string{}, c.occupants...),
			Queue:    append([]string{}, c.queue...),
		}
		if b.mode == ModeGroups {
			if g := b.activeGroup(c); g != nil {
				cs.Players = append([]string{}, g.Members...)
				cs.Groups = append(cs.Groups, GroupSnapshot{
					ID:       g.ID,
					Members:  append([]string{}, g.Members...),
					Filled:   len(g.Members),
					Capacity: b.capacity,
				})
			}
			for i, g := range b.queuedGroups(c) {
				cs.Queue = append(cs.Queue, g.Members...)
				cs.Groups = append(cs.Groups, GroupSnapshot{
					ID:       g.ID,
					Members:  append([]string{}, g.Members...),
					Filled:   len(g.Members),
					Capacity: b.capacity,
					InQueue:  true,
					Position: i + 1,
				})
			}
		}
		snap.Courts = append(snap.Courts, cs)
	}
	return snap
}
