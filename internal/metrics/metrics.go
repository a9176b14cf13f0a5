package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Service owns the Prometheus registry and the application counters.
type Service struct {
	Registry *prometheus.Registry

	EncodeRequestsTotal *prometheus.CounterVec
	SignRequestsTotal   *prometheus.CounterVec
	WatcherAlertsTotal  *prometheus.CounterVec
}

func New() *Service {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Service{
		Registry: registry,
		EncodeRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timelock_encode_requests_total",
			Help: "Number of contract call encode requests by outcome.",
		}, []string{"outcome"}),
		SignRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timelock_sign_requests_total",
			Help: "Number of operation id signing attempts by outcome.",
		}, []string{"outcome"}),
		WatcherAlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timelock_watcher_alerts_total",
			Help: "Number of alerts raised by the chain watcher by kind.",
		}, []string{"kind"}),
	}

	registry.MustRegister(
		s.EncodeRequestsTotal,
		s.SignRequestsTotal,
		s.WatcherAlertsTotal,
	)

	return s
}
