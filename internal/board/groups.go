package board

import "github.com/google/uuid"

// Group mode keeps the same promotion and capacity rules as singles mode but
// the unit moving between queue and court is a multi-seat group. After every
// mutation the owning court is settled: at most one active group remains
// (surplus actives are pushed back to the head of the queue in stable order)
// and empty queue groups are reclaimed eagerly. A freshly created placeholder
// is exempt from reclamation until the next settling operation.

// CreateGroup adds a new, empty group to a court, either as the (sole)
// active group or at the tail of the queue. Returns the group ID.
func (b *Board) CreateGroup(court string, inQueue bool) (string, error) {
	if b.mode != ModeGroups {
		return "", ErrGroupsDisabled
	}
	c, ok := b.byName[court]
	if !ok {
		return "", ErrCourtNotFound
	}
	g := &Group{ID: uuid.NewString(), Court: c.Name, InQueue: inQueue}
	c.groups = append(c.groups, g)
	b.settle(c, g.ID)
	return g.ID, nil
}

// JoinSlot seats a player in a group. Fails if the group is full or the
// player is already assigned anywhere.
func (b *Board) JoinSlot(user, groupID string) error {
	if b.mode != ModeGroups {
		return ErrGroupsDisabled
	}
	g, c, ok := b.findGroup(groupID)
	if !ok {
		return ErrGroupNotFound
	}
	if _, active := b.index[user]; active {
		return ErrAlreadyActive
	}
	if len(g.Members) >= b.capacity {
		return ErrGroupFull
	}
	g.Members = append(g.Members, user)
	b.index[user] = Assignment{Court: c.Name, Kind: KindGroup, Group: g.ID}
	b.settle(c, "")
	return nil
}

// MovePlayer reseats a player into another group. Admin-only at the API
// layer; it works regardless of timer state since it is a correction tool,
// not a voluntary leave.
func (b *Board) MovePlayer(user, toGroupID string) error {
	if b.mode != ModeGroups {
		return ErrGroupsDisabled
	}
	target, targetCourt, ok := b.findGroup(toGroupID)
	if !ok {
		return ErrGroupNotFound
	}
	a, assigned := b.index[user]
	if !assigned || a.Kind != KindGroup {
		return ErrNotAssigned
	}
	if a.Group == toGroupID {
		return nil
	}
	if len(target.Members) >= b.capacity {
		return ErrGroupFull
	}
	source, sourceCourt, _ := b.findGroup(a.Group)
	source.Members = removeString(source.Members, user)
	target.Members = append(target.Members, user)
	b.index[user] = Assignment{Court: targetCourt.Name, Kind: KindGroup, Group: target.ID}
	b.settle(sourceCourt, "")
	b.promoteGroups(sourceCourt)
	if targetCourt != sourceCourt {
		b.settle(targetCourt, "")
	}
	return nil
}

// RemovePlayer unseats a player from their group, leaving them unassigned.
// Admin-only at the API layer.
func (b *Board) RemovePlayer(user string) error {
	if b.mode != ModeGroups {
		return ErrGroupsDisabled
	}
	a, assigned := b.index[user]
	if !assigned || a.Kind != KindGroup {
		return ErrNotAssigned
	}
	g, c, _ := b.findGroup(a.Group)
	g.Members = removeString(g.Members, user)
	delete(b.index, user)
	b.settle(c, "")
	b.promoteGroups(c)
	return nil
}

// RemoveQueueGroup deletes a queue group outright: its members become
// unassigned and later queue groups shift up one position.
func (b *Board) RemoveQueueGroup(groupID string) error {
	if b.mode != ModeGroups {
		return ErrGroupsDisabled
	}
	g, c, ok := b.findGroup(groupID)
	if !ok {
		return ErrGroupNotFound
	}
	if !g.InQueue {
		return ErrNotQueueGroup
	}
	for _, u := range g.Members {
		delete(b.index, u)
	}
	c.groups = removeGroup(c.groups, groupID)
	b.settle(c, "")
	return nil
}

// Groups returns the current groups of a court in board order: the active
// group first, then the queue front to back.
func (b *Board) Groups(court string) ([]*Group, error) {
	if b.mode != ModeGroups {
		return nil, ErrGroupsDisabled
	}
	c, ok := b.byName[court]
	if !ok {
		return nil, ErrCourtNotFound
	}
	out := make([]*Group, len(c.groups))
	copy(out, c.groups)
	return out, nil
}

// joinCourtGroups maps the plain join-court operation onto the group ledger:
// take a free seat in the active group, creating it if the court is empty.
func (b *Board) joinCourtGroups(c *Court, user string) error {
	g := b.activeGroup(c)
	if g == nil {
		g = &Group{ID: uuid.NewString(), Court: c.Name}
		c.groups = append([]*Group{g}, c.groups...)
	}
	if len(g.Members) >= b.capacity {
		return ErrCourtFull
	}
	g.Members = append(g.Members, user)
	b.index[user] = Assignment{Court: c.Name, Kind: KindGroup, Group: g.ID}
	b.settle(c, "")
	return nil
}

// joinQueueGroups fills the partial tail queue group, or opens a new one.
func (b *Board) joinQueueGroups(c *Court, user string) {
	queued := b.queuedGroups(c)
	var g *Group
	if n := len(queued); n > 0 && len(queued[n-1].Members) < b.capacity {
		g = queued[n-1]
	} else {
		g = &Group{ID: uuid.NewString(), Court: c.Name, InQueue: true}
		c.groups = append(c.groups, g)
	}
	g.Members = append(g.Members, user)
	b.index[user] = Assignment{Court: c.Name, Kind: KindGroup, Group: g.ID}
}

func (b *Board) leaveGroups(a Assignment, user string, timerRunning bool) ([]string, error) {
	g, c, ok := b.findGroup(a.Group)
	if !ok {
		// Index pointed at a reclaimed group; treat as unassigned.
		delete(b.index, user)
		return nil, ErrNotAssigned
	}
	if !g.InQueue && timerRunning {
		return nil, ErrTimerRunning
	}
	g.Members = removeString(g.Members, user)
	delete(b.index, user)
	b.settle(c, "")
	return b.promoteGroups(c), nil
}

// rotateAllGroups evicts every active group (members become unassigned, the
// group is dissolved) and promotes the front queue group of each court.
func (b *Board) rotateAllGroups() RotationResult {
	var res RotationResult
	for _, c := range b.courts {
		kept := c.groups[:0]
		for _, g := range c.groups {
			if g.InQueue {
				kept = append(kept, g)
				continue
			}
			for _, u := range g.Members {
				delete(b.index, u)
				res.Evicted = append(res.Evicted, u)
			}
		}
		c.groups = kept
	}
	for _, c := range b.courts {
		b.settle(c, "")
		res.Promoted = append(res.Promoted, b.promoteGroups(c)...)
	}
	return res
}

// promoteGroups moves the front queue group on court when no active group
// remains. Partial groups promote as-is; the free seats stay open for
// JoinCourt.
func (b *Board) promoteGroups(c *Court) []string {
	var promoted []string
	for b.activeGroup(c) == nil {
		queued := b.queuedGroups(c)
		if len(queued) == 0 {
			break
		}
		next := queued[0]
		next.InQueue = false
		promoted = append(promoted, next.Members...)
	}
	return promoted
}

// settle restores the court's group invariants after any mutation: one
// active group at most (extras re-queue at the head, stable order), no empty
// groups except the exempt placeholder.
func (b *Board) settle(c *Court, exempt string) {
	if b.mode != ModeGroups {
		return
	}
	var actives, queued []*Group
	for _, g := range c.groups {
		if g.InQueue {
			queued = append(queued, g)
		} else {
			actives = append(actives, g)
		}
	}
	if len(actives) > 1 {
		for _, g := range actives[1:] {
			g.InQueue = true
		}
		queued = append(append([]*Group{}, actives[1:]...), queued...)
		actives = actives[:1]
	}
	settled := make([]*Group, 0, len(actives)+len(queued))
	for _, g := range actives {
		if len(g.Members) > 0 || g.ID == exempt {
			settled = append(settled, g)
		}
	}
	for _, g := range queued {
		if len(g.Members) > 0 || g.ID == exempt {
			settled = append(settled, g)
		}
	}
	c.groups = settled
}

func (b *Board) activeGroup(c *Court) *Group {
	for _, g := range c.groups {
		if !g.InQueue {
			return g
		}
	}
	return nil
}

func (b *Board) queuedGroups(c *Court) []*Group {
	var out []*Group
	for _, g := range c.groups {
		if g.InQueue {
			out = append(out, g)
		}
	}
	return out
}

func (b *Board) findGroup(id string) (*Group, *Court, bool) {
	for _, c := range b.courts {
		for _, g := range c.groups {
			if g.ID == id {
				return g, c, true
			}
		}
	}
	return nil, nil, false
}

func removeGroup(groups []*Group, id string) []*Group {
	out := groups[:0]
	for _, g := range groups {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}
