package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Joins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "board_joins_total",
			Help: "The total number of successful court and queue joins.",
		}),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "board_promotions_total",
			Help: "The total number of players promoted from queue to court.",
		}),
		Rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "board_rotations_total",
			Help: "The total number of timer-expiry rotations executed.",
		}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "board_rejections_total",
			Help: "The total number of rejected board operations, by reason.",
		}, []string{"reason"}),
		SnapshotPushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "board_snapshot_pushes_total",
			Help: "The total number of snapshots pushed to live subscribers.",
		}),
		LiveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "board_live_clients",
			Help: "The number of currently connected live-update subscribers.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "board_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Joins,
		s.Promotions,
		s.Rotations,
		s.Rejections,
		s.SnapshotPushes,
		s.LiveClients,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncJoins() {
	s.Joins.Inc()
}

func (s *Service) IncPromotions(n int) {
	s.Promotions.Add(float64(n))
}

func (s *Service) IncRotations() {
	s.Rotations.Inc()
}

func (s *Service) IncRejections(reason string) {
	s.Rejections.WithLabelValues(reason).Inc()
}

func (s *Service) IncSnapshotPushes() {
	s.SnapshotPushes.Inc()
}

func (s *Service) SetLiveClients(n int) {
	s.LiveClients.Set(float64(n))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
