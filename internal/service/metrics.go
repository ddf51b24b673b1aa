package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pribylovaa/kueater-client/internal/gateway"
)

// Metrics — счётчики слоя синхронизации. Нулевой *Metrics допустим.
type Metrics struct {
	mutations *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	pages     *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kueater",
			Subsystem: "client",
			Name:      "mutations_total",
			Help:      "Optimistic mutations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kueater",
			Subsystem: "client",
			Name:      "mutation_duration_seconds",
			Help:      "Time from optimistic apply to commit or rollback.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kueater",
			Subsystem: "client",
			Name:      "page_loads_total",
			Help:      "Collection page fetches by view and result.",
		}, []string{"view", "result"}),
	}

	reg.MustRegister(m.mutations, m.duration, m.pages)

	return m
}

func (m *Metrics) observeMutation(kind Kind, outcome Outcome, d time.Duration) {
	if m == nil {
		return
	}

	m.mutations.WithLabelValues(string(kind), string(outcome)).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (m *Metrics) observePage(view string, err error) {
	if m == nil {
		return
	}

	m.pages.WithLabelValues(view, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case gateway.IsNetwork(err):
		return "network_error"
	case gateway.IsAPI(err):
		return "api_error"
	case gateway.IsDecode(err):
		return "decode_error"
	default:
		return "error"
	}
}
