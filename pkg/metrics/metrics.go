package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "learnpath"

var (
	ProviderCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_calls_total",
		Help:      "Content provider calls by backend, operation and outcome.",
	}, []string{"backend", "operation", "outcome"})

	ProviderLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_call_duration_seconds",
		Help:      "Content provider call latency.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"backend", "operation"})

	ProviderContractViolations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_contract_violations_total",
		Help:      "Provider responses that disagreed with the requested shape but were still usable.",
	}, []string{"kind"})

	AssessmentOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assessment_outcomes_total",
		Help:      "Evaluated assessments by evaluator and result.",
	}, []string{"evaluator", "result"})

	ChatMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Incoming chat messages by reconciliation outcome.",
	}, []string{"outcome"})
)

// NewRegistry returns a registry with the service collectors plus the Go and
// process collectors.
func NewRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		ProviderCalls,
		ProviderLatency,
		ProviderContractViolations,
		AssessmentOutcomes,
		ChatMessages,
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return nil, err
		}
	}
	return reg, nil
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ObserveProviderCall matches llm.ObserveFunc.
func ObserveProviderCall(backend, operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ProviderCalls.WithLabelValues(backend, operation, outcome).Inc()
	ProviderLatency.WithLabelValues(backend, operation).Observe(duration.Seconds())
}
