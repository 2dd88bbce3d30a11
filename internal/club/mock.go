package club

import (
	"sync"
	"time"
)

// MockStore is an in-memory implementation of the MemberStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMemberFunc     func(username, password string, isAdmin bool) error
	AuthenticateFunc     func(username, password string) (Member, error)
	GetMemberFunc        func(username string) (Member, error)
	ListMembersFunc      func() ([]Member, error)
	RemoveMemberFunc     func(username string) error
	ClubStateFunc        func() (ClubState, error)
	SetClubActiveFunc    func(active bool, at time.Time) error
	TimerDurationFunc    func() (time.Duration, error)
	SetTimerDurationFunc func(d time.Duration) error

	// Call records
	CreateMemberCalls []struct {
		Username string
		IsAdmin  bool
	}
	SetClubActiveCalls    []bool
	SetTimerDurationCalls []time.Duration

	// Default in-memory state used when no spy is installed.
	members  map[string]Member
	club     ClubState
	duration time.Duration
}

// NewMock creates a new mock instance preloaded with a default 15 minute
// timer duration.
func NewMock() *MockStore {
	return &MockStore{
		members:  make(map[string]Member),
		duration: 15 * time.Minute,
	}
}

func (m *MockStore) CreateMember(username, password string, isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMemberCalls = append(m.CreateMemberCalls, struct {
		Username string
		IsAdmin  bool
	}{username, isAdmin})
	if m.CreateMemberFunc != nil {
		return m.CreateMemberFunc(username, password, isAdmin)
	}
	if _, ok := m.members[username]; ok {
		return ErrMemberExists
	}
	m.members[username] = Member{Username: username, PasswordHash: password, IsAdmin: isAdmin}
	return nil
}

func (m *MockStore) Authenticate(username, password string) (Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(username, password)
	}
	member, ok := m.members[username]
	if !ok || member.PasswordHash != password {
		return Member{}, ErrInvalidCredentials
	}
	return member, nil
}

func (m *MockStore) GetMember(username string) (Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMemberFunc != nil {
		return m.GetMemberFunc(username)
	}
	member, ok := m.members[username]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return member, nil
}

func (m *MockStore) ListMembers() ([]Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc()
	}
	var out []Member
	for _, member := range m.members {
		out = append(out, member)
	}
	return out, nil
}

func (m *MockStore) RemoveMember(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(username)
	}
	member, ok := m.members[username]
	if !ok {
		return ErrMemberNotFound
	}
	if member.IsAdmin {
		return ErrMemberIsAdmin
	}
	delete(m.members, username)
	return nil
}

func (m *MockStore) ClubState() (ClubState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClubStateFunc != nil {
		return m.ClubStateFunc()
	}
	return m.club, nil
}

func (m *MockStore) SetClubActive(active bool, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetClubActiveCalls = append(m.SetClubActiveCalls, active)
	if m.SetClubActiveFunc != nil {
		return m.SetClubActiveFunc(active, at)
	}
	m.club = ClubState{IsActive: active, LastModified: at}
	return nil
}

func (m *MockStore) TimerDuration() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TimerDurationFunc != nil {
		return m.TimerDurationFunc()
	}
	return m.duration, nil
}

func (m *MockStore) SetTimerDuration(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetTimerDurationCalls = append(m.SetTimerDurationCalls, d)
	if m.SetTimerDurationFunc != nil {
		return m.SetTimerDurationFunc(d)
	}
	m.duration = d
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members = make(map[string]Member)
	m.club = ClubState{}
	m.duration = 15 * time.Minute
}
