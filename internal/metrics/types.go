package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	Joins              prometheus.Counter
	Promotions         prometheus.Counter
	Rotations          prometheus.Counter
	Rejections         *prometheus.CounterVec
	SnapshotPushes     prometheus.Counter
	LiveClients        prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}
