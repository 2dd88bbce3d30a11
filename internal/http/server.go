package http

import (
	"net/http"

	"github.com/brianxchen/badminton-queue/internal/auth"
	"github.com/brianxchen/badminton-queue/internal/club"
	"github.com/brianxchen/badminton-queue/internal/config"
	"github.com/brianxchen/badminton-queue/internal/live"
	"github.com/brianxchen/badminton-queue/internal/metrics"
	"github.com/brianxchen/badminton-queue/internal/processor"
)

func NewServer(store club.MemberStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, proc *processor.Processor, authSvc *auth.Service, hub *live.Hub) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Processor:      proc,
		Auth:           authSvc,
		Hub:            hub,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Routes come in three tiers: public, member (authMiddleware) and admin
	// (authMiddleware then adminMiddleware).
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), loggingMiddleware))

	s.Router.Handle("POST /signup", Chain(s.SignupHandler(), loggingMiddleware))
	s.Router.Handle("POST /login", Chain(s.LoginHandler(), loggingMiddleware))

	s.Router.Handle("GET /board", Chain(s.BoardHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("GET /updates", Chain(live.Handler(s.Hub), loggingMiddleware, s.authMiddleware))

	s.Router.Handle("POST /courts/{court}/join", Chain(s.JoinCourtHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("POST /courts/{court}/queue", Chain(s.JoinQueueHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("POST /courts/{court}/leave", Chain(s.LeaveHandler(), loggingMiddleware, s.authMiddleware))

	s.Router.Handle("GET /courts/{court}/groups", Chain(s.ListGroupsHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("POST /courts/{court}/groups", Chain(s.CreateGroupHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("POST /groups/{group}/join", Chain(s.JoinSlotHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("POST /groups/{group}/move", Chain(s.MovePlayerHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("POST /groups/remove-player", Chain(s.RemovePlayerHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("DELETE /groups/{group}", Chain(s.RemoveQueueGroupHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))

	s.Router.Handle("GET /timer/status", Chain(s.TimerStatusHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("POST /timer/start", Chain(s.TimerStartHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("POST /timer/stop", Chain(s.TimerStopHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("POST /timer/reset", Chain(s.TimerResetHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("POST /timer/set-duration", Chain(s.TimerSetDurationHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))

	s.Router.Handle("GET /club-status", Chain(s.ClubStatusHandler(), loggingMiddleware, s.authMiddleware))
	s.Router.Handle("POST /toggle-club-status", Chain(s.ToggleClubStatusHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("POST /clear-courts", Chain(s.ClearCourtsHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))

	s.Router.Handle("GET /members", Chain(s.ListMembersHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("POST /members", Chain(s.CreateMemberHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
	s.Router.Handle("DELETE /members/{username}", Chain(s.RemoveMemberHandler(), loggingMiddleware, s.authMiddleware, s.adminMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
