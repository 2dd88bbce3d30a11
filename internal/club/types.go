package club

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Member is a registered club member. The credential hash never leaves the
// store in API responses.
type Member struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// ClubState is the global open/closed flag gating board visibility.
type ClubState struct {
	IsActive     bool      `json:"is_active"`
	LastModified time.Time `json:"last_modified"`
}

var (
	ErrMemberExists       = errors.New("member already exists")
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMemberIsAdmin      = errors.New("cannot remove an admin member")
)
