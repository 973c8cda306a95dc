package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cvforge", Name: "generations_total", Help: "Document generations by kind and status."},
		[]string{"kind", "status"},
	)
	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cvforge", Name: "renders_total", Help: "PDF renders by outcome."},
		[]string{"outcome"},
	)
	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cvforge",
			Name:      "llm_request_duration_seconds",
			Help:      "Latency of LLM calls by label.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"label"},
	)
)

// RegisterCollectors registers the application collectors on the given registry.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(GenerationsTotal)
	reg.MustRegister(RendersTotal)
	reg.MustRegister(LLMRequestDuration)
}
