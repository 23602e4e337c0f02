// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package orchestrator

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for survey creation runs. A nil
// *Metrics records nothing.
type Metrics struct {
	stepDuration   *prometheus.HistogramVec
	stepFailures   *prometheus.CounterVec
	surveysCreated prometheus.Counter
	partialSurveys prometheus.Counter
	runsActive     prometheus.Gauge
}

// MustNewMetrics registers the collectors with reg, reusing collectors that
// are already registered under the same names. Other registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		stepDuration: mustRegister(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "triangle",
				Subsystem: "survey_creation",
				Name:      "step_duration_seconds",
				Help:      "Duration of each survey creation call.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"step", "status"},
		)),
		stepFailures: mustRegister(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "triangle",
				Subsystem: "survey_creation",
				Name:      "step_failures_total",
				Help:      "Creation runs aborted, by the step that failed.",
			},
			[]string{"step"},
		)),
		surveysCreated: mustRegister(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "triangle",
				Subsystem: "survey_creation",
				Name:      "surveys_created_total",
				Help:      "Surveys created and announced to members.",
			},
		)),
		partialSurveys: mustRegister(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "triangle",
				Subsystem: "survey_creation",
				Name:      "partial_surveys_total",
				Help:      "Aborted runs that left a survey behind in the backend.",
			},
		)),
		runsActive: mustRegister(reg, prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "triangle",
				Subsystem: "survey_creation",
				Name:      "runs_active",
				Help:      "Creation runs in progress.",
			},
		)),
	}
}

func mustRegister[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) observeStep(step, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(step, status).Observe(d.Seconds())
}

func (m *Metrics) incAborted(step string, partial bool) {
	if m == nil {
		return
	}
	m.stepFailures.WithLabelValues(step).Inc()
	if partial {
		m.partialSurveys.Inc()
	}
}

func (m *Metrics) incCreated() {
	if m == nil {
		return
	}
	m.surveysCreated.Inc()
}

func (m *Metrics) runStarted() {
	if m == nil {
		return
	}
	m.runsActive.Inc()
}

func (m *Metrics) runFinished() {
	if m == nil {
		return
	}
	m.runsActive.Dec()
}
