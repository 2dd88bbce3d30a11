package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/brianxchen/badminton-queue/internal/auth"
	"github.com/brianxchen/badminton-queue/internal/board"
	"github.com/brianxchen/badminton-queue/internal/club"
	"github.com/brianxchen/badminton-queue/internal/processor"
	"github.com/brianxchen/badminton-queue/internal/rotation"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// statusForError maps domain errors onto HTTP status codes. Anything
// unmapped is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, club.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, processor.ErrClubClosed):
		return http.StatusForbidden
	case errors.Is(err, club.ErrMemberExists),
		errors.Is(err, club.ErrMemberIsAdmin),
		errors.Is(err, board.ErrCourtFull),
		errors.Is(err, board.ErrGroupFull),
		errors.Is(err, board.ErrAlreadyActive),
		errors.Is(err, board.ErrAlreadyQueued),
		errors.Is(err, board.ErrTimerRunning):
		return http.StatusConflict
	case errors.Is(err, board.ErrCourtNotFound),
		errors.Is(err, board.ErrGroupNotFound),
		errors.Is(err, club.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrNotAssigned),
		errors.Is(err, board.ErrGroupsDisabled),
		errors.Is(err, board.ErrNotQueueGroup),
		errors.Is(err, rotation.ErrInvalidDuration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error("Unhandled error", "error", err)
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		if err := s.Store.CreateMember(req.Username, req.Password, false); err != nil {
			respondDomainError(w, err)
			return
		}
		token, err := s.Auth.Issue(auth.Identity{Username: req.Username})
		if err != nil {
			log.Error("Failed to issue token", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, http.StatusCreated, tokenResponse{Token: token, Username: req.Username})
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		member, err := s.Store.Authenticate(req.Username, req.Password)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		token, err := s.Auth.Issue(auth.Identity{Username: member.Username, IsAdmin: member.IsAdmin})
		if err != nil {
			log.Error("Failed to issue token", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, http.StatusOK, tokenResponse{Token: token, Username: member.Username, IsAdmin: member.IsAdmin})
	}
}

// BoardHandler returns the board snapshot. A closed club hides the board
// from everyone but admins.
func (s *Server) BoardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromContext(r)
		if !s.Processor.VisibleTo(caller) {
			respondError(w, http.StatusForbidden, "club is not active")
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) JoinCourtHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromContext(r)
		if err := s.Processor.JoinCourt(caller, r.PathValue("court")); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) JoinQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromContext(r)
		if err := s.Processor.JoinQueue(caller, r.PathValue("court")); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) LeaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromContext(r)
		if err := s.Processor.Leave(caller, r.PathValue("court")); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) ListGroupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := s.Processor.Groups(r.PathValue("court"))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, groups)
	}
}

func (s *Server) CreateGroupHandler() http.HandlerFunc {
	type request struct {
		InQueue bool `json:"in_queue"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if r.Body != nil {
			// An empty body means an active-court group.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		caller := callerFromContext(r)
		id, err := s.Processor.CreateGroup(caller, r.PathValue("court"), req.InQueue)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"group_id": id})
	}
}

func (s *Server) JoinSlotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromContext(r)
		if err := s.Processor.JoinSlot(caller, r.PathValue("group")); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) MovePlayerHandler() http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
			respondError(w, http.StatusBadRequest, "username is required")
			return
		}
		if err := s.Processor.MovePlayer(req.Username, r.PathValue("group")); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
			respondError(w, http.StatusBadRequest, "username is required")
			return
		}
		if err := s.Processor.RemovePlayer(req.Username); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) RemoveQueueGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Processor.RemoveQueueGroup(r.PathValue("group")); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

// TimerStatusHandler is what clients poll; it is also where an elapsed
// countdown actually fires the rotation.
func (s *Server) TimerStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Processor.TimerStatusNow())
	}
}

func (s *Server) TimerStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Processor.TimerStart())
	}
}

func (s *Server) TimerStopHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Processor.TimerStop())
	}
}

func (s *Server) TimerResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Processor.TimerReset())
	}
}

func (s *Server) TimerSetDurationHandler() http.HandlerFunc {
	type request struct {
		Minutes float64 `json:"minutes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "minutes is required")
			return
		}
		status, err := s.Processor.TimerSetDuration(req.Minutes)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, status)
	}
}

func (s *Server) ClubStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Processor.ClubStatus())
	}
}

func (s *Server) ToggleClubStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Processor.ToggleClub())
	}
}

func (s *Server) ClearCourtsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Processor.ClearCourts()
		respondJSON(w, http.StatusOK, s.Processor.Snapshot())
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := s.Store.ListMembers()
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, members)
	}
}

// CreateMemberHandler lets an admin register accounts directly, including
// other admins. Self-service signup never grants the admin flag.
func (s *Server) CreateMemberHandler() http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"is_admin"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		if err := s.Store.CreateMember(req.Username, req.Password, req.IsAdmin); err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"username": req.Username, "is_admin": req.IsAdmin})
	}
}

// RemoveMemberHandler deletes a member and drops them from the board so no
// ghost entry lingers on a court or in a queue.
func (s *Server) RemoveMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")
		if err := s.Store.RemoveMember(username); err != nil {
			respondDomainError(w, err)
			return
		}
		s.Processor.DropUser(username)
		w.WriteHeader(http.StatusNoContent)
	}
}
