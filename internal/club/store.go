package club

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
)

// New creates a new MemberStore.
func New(db *sql.DB) MemberStore {
	return &store{
		db: db,
	}
}

// CreateMember registers a member with a bcrypt-hashed credential.
func (s *store) CreateMember(username, password string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM members WHERE username = ?)", username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check member existence: %w", err)
	}
	if exists {
		return ErrMemberExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec("INSERT INTO members (username, password_hash, is_admin) VALUES (?, ?, ?)", username, string(hash), isAdmin)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	log.Info("Created member", "username", username, "is_admin", isAdmin)
	return nil
}

// Authenticate verifies a username/password pair. It returns the same error
// for an unknown username and a wrong password so the response does not leak
// which usernames exist.
func (s *store) Authenticate(username, password string) (Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.getMemberLocked(username)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return Member{}, ErrInvalidCredentials
		}
		return Member{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return Member{}, ErrInvalidCredentials
	}
	return m, nil
}

func (s *store) GetMember(username string) (Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMemberLocked(username)
}

func (s *store) getMemberLocked(username string) (Member, error) {
	var m Member
	err := s.db.QueryRow("SELECT username, password_hash, is_admin FROM members WHERE username = ?", username).
		Scan(&m.Username, &m.PasswordHash, &m.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, fmt.Errorf("failed to query member: %w", err)
	}
	return m, nil
}

func (s *store) ListMembers() ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT username, password_hash, is_admin FROM members ORDER BY username")
	if err != nil {
		log.Error("Failed to query members", "error", err)
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.Username, &m.PasswordHash, &m.IsAdmin); err != nil {
			log.Error("Failed to scan member row", "error", err)
			continue
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// RemoveMember deletes a non-admin member. Admin accounts are protected.
func (s *store) RemoveMember(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.getMemberLocked(username)
	if err != nil {
		return err
	}
	if m.IsAdmin {
		return ErrMemberIsAdmin
	}
	_, err = s.db.Exec("DELETE FROM members WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	log.Info("Removed member", "username", username)
	return nil
}

// ClubState reads the open/closed singleton. A missing row is treated as an
// inactive club rather than an error so a fresh database behaves sanely.
func (s *store) ClubState() (ClubState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active bool
	var modified sql.NullInt64
	err := s.db.QueryRow("SELECT is_active, last_modified FROM club_state WHERE id = 1").Scan(&active, &modified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ClubState{}, nil
		}
		return ClubState{}, fmt.Errorf("failed to query club state: %w", err)
	}
	cs := ClubState{IsActive: active}
	if modified.Valid {
		cs.LastModified = time.Unix(modified.Int64, 0).UTC()
	}
	return cs, nil
}

func (s *store) SetClubActive(active bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO club_state (id, is_active, last_modified) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET is_active = excluded.is_active, last_modified = excluded.last_modified`,
		active, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to update club state: %w", err)
	}
	return nil
}

// TimerDuration reads the configured rotation length. Falls back to the
// schema default when the singleton row is missing.
func (s *store) TimerDuration() (time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var seconds int64
	err := s.db.QueryRow("SELECT duration_seconds FROM timer_settings WHERE id = 1").Scan(&seconds)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 15 * time.Minute, nil
		}
		return 0, fmt.Errorf("failed to query timer duration: %w", err)
	}
	return time.Duration(seconds) * time.Second, nil
}

func (s *store) SetTimerDuration(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO timer_settings (id, duration_seconds) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET duration_seconds = excluded.duration_seconds`,
		int64(d/time.Second))
	if err != nil {
		return fmt.Errorf("failed to update timer duration: %w", err)
	}
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"members", "club_state", "timer_settings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
