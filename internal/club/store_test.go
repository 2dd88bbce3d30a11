package club

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianxchen/badminton-queue/internal/database"
)

// setupTestStore creates a MemberStore backed by an in-memory database with
// the migrations applied.
func setupTestStore(t *testing.T) MemberStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() {
		teardown()
		db.Close()
	})
	return New(db)
}

func TestCreateAndGetMember(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.CreateMember("alice", "password123", false))

	m, err := store.GetMember("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", m.Username)
	assert.False(t, m.IsAdmin)
	assert.NotEqual(t, "password123", m.PasswordHash, "password must be stored hashed")

	_, err = store.GetMember("ghost")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	assert.ErrorIs(t, store.CreateMember("alice", "other", false), ErrMemberExists)
}

func TestAuthenticate(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.CreateMember("alice", "password123", true))

	m, err := store.Authenticate("alice", "password123")
	require.NoError(t, err)
	assert.True(t, m.IsAdmin)

	// Unknown user and wrong password produce the same error.
	_, err = store.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = store.Authenticate("ghost", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListMembers(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.CreateMember("bob", "pw", false))
	require.NoError(t, store.CreateMember("alice", "pw", true))

	members, err := store.ListMembers()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "bob", members[1].Username)
}

func TestRemoveMemberProtectsAdmins(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.CreateMember("admin", "pw", true))
	require.NoError(t, store.CreateMember("alice", "pw", false))

	assert.ErrorIs(t, store.RemoveMember("admin"), ErrMemberIsAdmin)
	assert.ErrorIs(t, store.RemoveMember("ghost"), ErrMemberNotFound)

	require.NoError(t, store.RemoveMember("alice"))
	_, err := store.GetMember("alice")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestClubStateRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	// A fresh database reports an inactive club.
	cs, err := store.ClubState()
	require.NoError(t, err)
	assert.False(t, cs.IsActive)

	at := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetClubActive(true, at))

	cs, err = store.ClubState()
	require.NoError(t, err)
	assert.True(t, cs.IsActive)
	assert.Equal(t, at, cs.LastModified)

	require.NoError(t, store.SetClubActive(false, at.Add(time.Hour)))
	cs, err = store.ClubState()
	require.NoError(t, err)
	assert.False(t, cs.IsActive)
}

func TestTimerDurationRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	// Falls back to the default without a configured row.
	d, err := store.TimerDuration()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	require.NoError(t, store.SetTimerDuration(10*time.Minute))
	d, err = store.TimerDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, d)

	// Upsert, not insert-only.
	require.NoError(t, store.SetTimerDuration(30*time.Second))
	d, err = store.TimerDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestClear(t *testing.T) {
	store := setupTestStore(t)
	require.NoError(t, store.CreateMember("alice", "pw", false))
	require.NoError(t, store.SetClubActive(true, time.Now()))
	require.NoError(t, store.SetTimerDuration(5*time.Minute))

	store.Clear()

	_, err := store.GetMember("alice")
	assert.ErrorIs(t, err, ErrMemberNotFound)
	cs, err := store.ClubState()
	require.NoError(t, err)
	assert.False(t, cs.IsActive)
}
