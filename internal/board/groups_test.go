package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupsBoard() *Board {
	return New(Config{
		Courts:   []string{"Court 1", "Court 2"},
		Capacity: 4,
		Mode:     ModeGroups,
	})
}

func TestGroupOpsDisabledInSinglesMode(t *testing.T) {
	b := New(Config{Courts: []string{"Court 1"}, Capacity: 2, Mode: ModeSingles})

	_, err := b.CreateGroup("Court 1", false)
	assert.ErrorIs(t, err, ErrGroupsDisabled)
	assert.ErrorIs(t, b.JoinSlot("alice", "g"), ErrGroupsDisabled)
	assert.ErrorIs(t, b.MovePlayer("alice", "g"), ErrGroupsDisabled)
	assert.ErrorIs(t, b.RemovePlayer("alice"), ErrGroupsDisabled)
	assert.ErrorIs(t, b.RemoveQueueGroup("g"), ErrGroupsDisabled)
	_, err = b.Groups("Court 1")
	assert.ErrorIs(t, err, ErrGroupsDisabled)
}

func TestCreateGroupAndJoinSlot(t *testing.T) {
	b := newGroupsBoard()

	id, err := b.CreateGroup("Court 1", false)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, b.JoinSlot("alice", id))
	require.NoError(t, b.JoinSlot("bob", id))

	assert.ErrorIs(t, b.JoinSlot("alice", id), ErrAlreadyActive)
	assert.ErrorIs(t, b.JoinSlot("x", "missing"), ErrGroupNotFound)

	require.NoError(t, b.JoinSlot("carol", id))
	require.NoError(t, b.JoinSlot("dave", id))
	assert.ErrorIs(t, b.JoinSlot("erin", id), ErrGroupFull)

	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, groups[0].Members)
	assert.False(t, groups[0].InQueue)
}

func TestEmptyPlaceholderReclaimedOnNextMutation(t *testing.T) {
	b := newGroupsBoard()

	// A fresh placeholder survives its own creation.
	id, err := b.CreateGroup("Court 1", true)
	require.NoError(t, err)
	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	// The next settling operation reclaims it.
	id2, err := b.CreateGroup("Court 1", true)
	require.NoError(t, err)
	groups, err = b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, id2, groups[0].ID)
	assert.NotEqual(t, id, groups[0].ID)
}

func TestSecondActiveGroupIsRequeuedAtHead(t *testing.T) {
	b := newGroupsBoard()

	first, err := b.CreateGroup("Court 1", false)
	require.NoError(t, err)
	require.NoError(t, b.JoinSlot("alice", first))

	queued, err := b.CreateGroup("Court 1", true)
	require.NoError(t, err)
	require.NoError(t, b.JoinSlot("bob", queued))

	// Creating a second active group demotes it to the queue head.
	second, err := b.CreateGroup("Court 1", false)
	require.NoError(t, err)
	require.NoError(t, b.JoinSlot("carol", second))

	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, first, groups[0].ID)
	assert.False(t, groups[0].InQueue)
	assert.Equal(t, second, groups[1].ID)
	assert.True(t, groups[1].InQueue)
	assert.Equal(t, queued, groups[2].ID)
}

func TestJoinCourtFillsActiveGroup(t *testing.T) {
	b := newGroupsBoard()

	// JoinCourt on an empty court opens the active group implicitly.
	require.NoError(t, b.JoinCourt("alice", "Court 1"))
	require.NoError(t, b.JoinCourt("bob", "Court 1"))

	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"alice", "bob"}, groups[0].Members)

	require.NoError(t, b.JoinCourt("carol", "Court 1"))
	require.NoError(t, b.JoinCourt("dave", "Court 1"))
	assert.ErrorIs(t, b.JoinCourt("erin", "Court 1"), ErrCourtFull)
}

func TestJoinQueueFillsPartialTailGroup(t *testing.T) {
	b := newGroupsBoard()

	require.NoError(t, b.JoinCourt("alice", "Court 1"))
	for _, u := range []string{"q1", "q2", "q3", "q4", "q5"} {
		require.NoError(t, b.JoinQueue(u, "Court 1"))
	}

	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, groups[1].Members)
	assert.Equal(t, []string{"q5"}, groups[2].Members)

	snap := b.Snapshot()
	assert.Equal(t, []string{"alice"}, snap.Courts[0].Players)
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5"}, snap.Courts[0].Queue)
}

func TestLeaveActiveGroupPromotesWhenEmptied(t *testing.T) {
	b := newGroupsBoard()

	require.NoError(t, b.JoinCourt("alice", "Court 1"))
	require.NoError(t, b.JoinQueue("bob", "Court 1"))
	require.NoError(t, b.JoinQueue("carol", "Court 1"))

	// Active members cannot leave while the timer runs.
	_, err := b.Leave("alice", "Court 1", true)
	assert.ErrorIs(t, err, ErrTimerRunning)

	// Queue members can.
	_, err = b.Leave("carol", "Court 1", true)
	require.NoError(t, err)

	promoted, err := b.Leave("alice", "Court 1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, promoted)

	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.False(t, groups[0].InQueue)
	assert.Equal(t, []string{"bob"}, groups[0].Members)
}

func TestMovePlayerBetweenGroups(t *testing.T) {
	b := newGroupsBoard()

	require.NoError(t, b.JoinCourt("alice", "Court 1"))
	require.NoError(t, b.JoinQueue("bob", "Court 1"))

	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	active, queued := groups[0], groups[1]

	require.NoError(t, b.MovePlayer("bob", active.ID))

	groups, err = b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"alice", "bob"}, groups[0].Members)

	// Moving into the same group is a no-op.
	require.NoError(t, b.MovePlayer("bob", active.ID))

	assert.ErrorIs(t, b.MovePlayer("ghost", active.ID), ErrNotAssigned)
	assert.ErrorIs(t, b.MovePlayer("bob", queued.ID), ErrGroupNotFound)
}

func TestMovePlayerOutOfActiveGroupPromotesQueue(t *testing.T) {
	b := newGroupsBoard()

	require.NoError(t, b.JoinCourt("alice", "Court 1"))
	require.NoError(t, b.JoinQueue("bob", "Court 1"))
	require.NoError(t, b.JoinCourt("carol", "Court 2"))

	groups2, err := b.Groups("Court 2")
	require.NoError(t, err)

	// Emptying Court 1's active group promotes its queue group.
	require.NoError(t, b.MovePlayer("alice", groups2[0].ID))

	groups1, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups1, 1)
	assert.False(t, groups1[0].InQueue)
	assert.Equal(t, []string{"bob"}, groups1[0].Members)

	a, _ := b.ActiveAssignment("alice")
	assert.Equal(t, "Court 2", a.Court)
}

func TestRemovePlayerAndRemoveQueueGroup(t *testing.T) {
	b := newGroupsBoard()

	require.NoError(t, b.JoinCourt("alice", "Court 1"))
	require.NoError(t, b.JoinQueue("bob", "Court 1"))
	require.NoError(t, b.JoinQueue("carol", "Court 1"))

	require.NoError(t, b.RemovePlayer("carol"))
	_, ok := b.ActiveAssignment("carol")
	assert.False(t, ok)

	groups, err := b.Groups("Court 1")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// The active group cannot be removed through the queue-group path.
	assert.ErrorIs(t, b.RemoveQueueGroup(groups[0].ID), ErrNotQueueGroup)

	require.NoError(t, b.RemoveQueueGroup(groups[1].ID))
	_, ok = b.ActiveAssignment("bob")
	assert.False(t, ok)

	assert.ErrorIs(t, b.RemoveQueueGroup("missing"), ErrGroupNotFound)
}

func TestRotateAllGroupsPromotesWholeGroups(t *testing.T) {
	b := newGroupsBoard()

	require.NoError(t, b.JoinCourt("a1", "Court 1"))
	require.NoError(t, b.JoinCourt("a2", "Court 1"))
	require.NoError(t, b.JoinQueue("b1", "Court 1"))
	require.NoError(t, b.JoinQueue("b2", "Court 1"))
	require.NoError(t, b.JoinQueue("b3", "Court 1"))
	require.NoError(t, b.JoinQueue("b4", "Court 1"))
	require.NoError(t, b.JoinQueue("c1", "Court 1"))

	res := b.RotateAll()
	assert.ElementsMatch(t, []string{"a1", "a2"}, res.Evicted)
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, res.Promoted)

	snap := b.Snapshot()
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, snap.Courts[0].Players)
	assert.Equal(t, []string{"c1"}, snap.Courts[0].Queue)

	// Partial groups promote as-is, leaving seats open.
	res = b.RotateAll()
	assert.Equal(t, []string{"c1"}, res.Promoted)
	require.NoError(t, b.JoinCourt("d1", "Court 1"))

	snap = b.Snapshot()
	assert.Equal(t, []string{"c1", "d1"}, snap.Courts[0].Players)
}

func TestGroupSnapshotPositions(t *testing.T) {
	b := newGroupsBoard()

	require.NoError(t, b.JoinCourt("alice", "Court 1"))
	require.NoError(t, b.JoinQueue("b1", "Court 1"))
	require.NoError(t, b.JoinQueue("b2", "Court 1"))
	require.NoError(t, b.JoinQueue("b3", "Court 1"))
	require.NoError(t, b.JoinQueue("b4", "Court 1"))
	require.NoError(t, b.JoinQueue("c1", "Court 1"))

	snap := b.Snapshot()
	require.Len(t, snap.Courts[0].Groups, 3)

	active := snap.Courts[0].Groups[0]
	assert.False(t, active.InQueue)
	assert.Equal(t, 0, active.Position)
	assert.Equal(t, 1, active.Filled)
	assert.Equal(t, 4, active.Capacity)

	first := snap.Courts[0].Groups[1]
	assert.True(t, first.InQueue)
	assert.Equal(t, 1, first.Position)

	second := snap.Courts[0].Groups[2]
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, []string{"c1"}, second.Members)
}
