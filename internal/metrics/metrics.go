// Package metrics defines the Prometheus collectors for task dispatch and
// exposes an HTTP handler for scraping.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Task outcomes used as the outcome label.
const (
	OutcomeDone    = "done"
	OutcomeAborted = "aborted"
	OutcomeFailed  = "failed"
)

// Metrics holds all collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	TasksStarted    prometheus.Counter
	TasksFinished   *prometheus.CounterVec
	TokensScanned   prometheus.Counter
	MismatchesTotal prometheus.Counter
	ActiveWorkers   prometheus.Gauge
	SlotCapacity    prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		TasksStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordcheck_tasks_started_total",
				Help: "Total tasks handed to a worker.",
			},
		),
		TasksFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordcheck_tasks_finished_total",
				Help: "Total tasks that reached a terminal state, by outcome (done, aborted, failed).",
			},
			[]string{"outcome"},
		),
		TokensScanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordcheck_tokens_scanned_total",
				Help: "Total document tokens checked.",
			},
		),
		MismatchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordcheck_mismatches_total",
				Help: "Total tokens not found in their reference list.",
			},
		),
		ActiveWorkers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordcheck_active_workers",
				Help: "Number of workers currently holding a slot.",
			},
		),
		SlotCapacity: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordcheck_slot_capacity",
				Help: "Current size of the slot table.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.TasksStarted,
		m.TasksFinished,
		m.TokensScanned,
		m.MismatchesTotal,
		m.ActiveWorkers,
		m.SlotCapacity,
	)
	return m
}

// Started records a worker launch.
func (m *Metrics) Started() {
	if m == nil {
		return
	}
	m.TasksStarted.Inc()
	m.ActiveWorkers.Inc()
}

// Finished records a worker leaving its slot.
func (m *Metrics) Finished(outcome string, tokens, mismatches int) {
	if m == nil {
		return
	}
	m.TasksFinished.WithLabelValues(outcome).Inc()
	m.TokensScanned.Add(float64(tokens))
	m.MismatchesTotal.Add(float64(mismatches))
	m.ActiveWorkers.Dec()
}

// Capacity records the slot table size.
func (m *Metrics) Capacity(n int) {
	if m == nil {
		return
	}
	m.SlotCapacity.Set(float64(n))
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Debugf("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
