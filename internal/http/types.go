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

type Server struct {
	Store          club.MemberStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Processor      *processor.Processor
	Auth           *auth.Service
	Hub            *live.Hub
	Router         *http.ServeMux
}
