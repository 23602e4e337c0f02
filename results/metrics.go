// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts results fetches by outcome. A nil *Metrics records nothing.
type Metrics struct {
	fetches *prometheus.CounterVec
}

func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triangle",
			Subsystem: "survey_results",
			Name:      "fetches_total",
			Help:      "Results fetches against the Survey API, by outcome.",
		},
		[]string{"outcome"},
	)
	if err := reg.Register(fetches); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}
		fetches = already.ExistingCollector.(*prometheus.CounterVec)
	}
	return &Metrics{fetches: fetches}
}

func (m *Metrics) incFetch(outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
}
