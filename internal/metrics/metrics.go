// Package metrics exports Prometheus counters fed by engine lifecycle hooks
// and lead capture outcomes.
package metrics

import (
	"context"
	"net/http"
	"strings"

	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/leads"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "incorporate"

// Metrics holds the collectors.
type Metrics struct {
	SessionsStarted prometheus.Counter
	Answers         *prometheus.CounterVec
	Rejections      *prometheus.CounterVec
	FlowsSelected   *prometheus.CounterVec
	Completions     *prometheus.CounterVec
	Leads           *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Conversations started.",
		}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Accepted answers by question.",
		}, []string{"question"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected events by operation.",
		}, []string{"op"}),
		FlowsSelected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flows_selected_total",
			Help:      "Terminal sequences chosen by flow.",
		}, []string{"flow"}),
		Completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Completed conversations by flow.",
		}, []string{"flow"}),
		Leads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_total",
			Help:      "Lead submissions by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.SessionsStarted, m.Answers, m.Rejections, m.FlowsSelected, m.Completions, m.Leads)
	return m
}

// NewRegistry creates a Prometheus registry with metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	return reg, NewMetrics(reg)
}

// HandlerFor returns the /metrics handler for reg.
func HandlerFor(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that update the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(context.Context, *domain.SessionEvent) {
			m.SessionsStarted.Inc()
		},
		OnAnswer: func(_ context.Context, e *domain.SessionEvent) {
			m.Answers.WithLabelValues(e.QuestionID).Inc()
		},
		OnFlowSelected: func(_ context.Context, e *domain.SessionEvent) {
			m.FlowsSelected.WithLabelValues(e.Flow.String()).Inc()
		},
		OnComplete: func(_ context.Context, e *domain.SessionEvent) {
			m.Completions.WithLabelValues(e.Flow.String()).Inc()
		},
		OnReject: func(_ context.Context, e *domain.SessionEvent) {
			op, _, _ := strings.Cut(e.Reason, ":")
			m.Rejections.WithLabelValues(op).Inc()
		},
	}
}

// CaptureHook returns a leads hook counting submissions by outcome.
func (m *Metrics) CaptureHook() leads.CaptureHook {
	return func(_ context.Context, _ *domain.Lead, err error) {
		outcome := "submitted"
		if err != nil {
			outcome = "failed"
		}
		m.Leads.WithLabelValues(outcome).Inc()
	}
}
