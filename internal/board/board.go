package board

// JoinCourt places a player directly on a court. It fails if the court is
// unknown, full, or the player already holds any assignment. No state is
// mutated on failure.
func (b *Board) JoinCourt(user, court string) error {
	c, ok := b.byName[court]
	if !ok {
		return ErrCourtNotFound
	}
	if _, active := b.index[user]; active {
		return ErrAlreadyActive
	}
	if b.mode == ModeGroups {
		return b.joinCourtGroups(c, user)
	}
	if len(c.occupants) >= b.capacity {
		return ErrCourtFull
	}
	c.occupants = append(c.occupants, user)
	b.index[user] = Assignment{Court: c.Name, Kind: KindCourt}
	return nil
}

// JoinQueue appends a player to the tail of a court's queue. A player who is
// already queued anywhere gets the dedicated already-queued rejection so the
// caller can word the response accordingly.
func (b *Board) JoinQueue(user, court string) error {
	c, ok := b.byName[court]
	if !ok {
		return ErrCourtNotFound
	}
	if a, active := b.index[user]; active {
		if b.isQueuedAssignment(a) {
			return ErrAlreadyQueued
		}
		return ErrAlreadyActive
	}
	if b.mode == ModeGroups {
		b.joinQueueGroups(c, user)
		return nil
	}
	c.queue = append(c.queue, user)
	b.index[user] = Assignment{Court: c.Name, Kind: KindQueue}
	return nil
}

// Leave removes the player's queue entry, or vacates their court occupancy.
// Vacating a court is refused while the rotation timer runs; a successful
// vacate immediately promotes from the queue. The returned slice lists the
// players promoted as a side effect.
func (b *Board) Leave(user, court string, timerRunning bool) ([]string, error) {
	if _, ok := b.byName[court]; !ok {
		return nil, ErrCourtNotFound
	}
	a, ok := b.index[user]
	if !ok {
		return nil, ErrNotAssigned
	}
	if b.mode == ModeGroups {
		return b.leaveGroups(a, user, timerRunning)
	}
	c := b.byName[a.Court]
	switch a.Kind {
	case KindQueue:
		c.queue = removeString(c.queue, user)
		delete(b.index, user)
		return nil, nil
	default:
		if timerRunning {
			return nil, ErrTimerRunning
		}
		c.occupants = removeString(c.occupants, user)
		delete(b.index, user)
		return b.promote(c), nil
	}
}

// promote moves players from the front of the queue onto the court while
// capacity remains. Relative queue order is preserved; positions stay dense
// because the queue is a slice.
func (b *Board) promote(c *Court) []string {
	var promoted []string
	for len(c.occupants) < b.capacity && len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.occupants = append(c.occupants, next)
		b.index[next] = Assignment{Court: c.Name, Kind: KindCourt}
		promoted = append(promoted, next)
	}
	return promoted
}

// RotateAll is the timer-expiry transition: every court is cleared (evicted
// players become unassigned, they do not re-queue), then each queue promotes
// up to capacity. Courts are walked in registry order so the pass is
// deterministic.
func (b *Board) RotateAll() RotationResult {
	if b.mode == ModeGroups {
		return b.rotateAllGroups()
	}
	var res RotationResult
	for _, c := range b.courts {
		for _, u := range c.occupants {
			delete(b.index, u)
			res.Evicted = append(res.Evicted, u)
		}
		c.occupants = nil
	}
	for _, c := range b.courts {
		res.Promoted = append(res.Promoted, b.promote(c)...)
	}
	return res
}

// ClearCourts wipes all occupancy, queues and groups. Admin-only at the API
// layer.
func (b *Board) ClearCourts() {
	for _, c := range b.courts {
		c.occupants = nil
		c.queue = nil
		c.groups = nil
	}
	b.index = make(map[string]Assignment)
}

// RemoveUser drops a player from wherever they are, compacting any queue
// they were waiting in. Used when an admin deletes a member. Reports whether
// the player held an assignment.
func (b *Board) RemoveUser(user string) bool {
	a, ok := b.index[user]
	if !ok {
		return false
	}
	c := b.byName[a.Court]
	switch a.Kind {
	case KindCourt:
		c.occupants = removeString(c.occupants, user)
	case KindQueue:
		c.queue = removeString(c.queue, user)
	case KindGroup:
		if g, _, found := b.findGroup(a.Group); found {
			g.Members = removeString(g.Members, user)
			b.settle(c, "")
		}
	}
	delete(b.index, user)
	return true
}

func (b *Board) isQueuedAssignment(a Assignment) bool {
	if a.Kind == KindQueue {
		return true
	}
	if a.Kind == KindGroup {
		if g, _, ok := b.findGroup(a.Group); ok {
			return g.InQueue
		}
	}
	return false
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
