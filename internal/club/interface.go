package club

import "time"

// MemberStore defines the interface for the club's durable state: the member
// registry plus the two singletons (club open flag, configured timer
// duration). Board occupancy itself is in-memory only; what lives here is
// what must survive a restart.
type MemberStore interface {
	CreateMember(username, password string, isAdmin bool) error
	Authenticate(username, password string) (Member, error)
	GetMember(username string) (Member, error)
	ListMembers() ([]Member, error)
	RemoveMember(username string) error

	ClubState() (ClubState, error)
	SetClubActive(active bool, at time.Time) error

	TimerDuration() (time.Duration, error)
	SetTimerDuration(d time.Duration) error

	Clear()
}
