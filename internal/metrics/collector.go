// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"fmt"
	"strconv"

	"github.com/ChainSafe/chain-overrides/lib/overrides"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "overrides"

var _ overrides.Metrics = (*Collector)(nil)

// Collector records the activity of a chain definition registry.
type Collector struct {
	loaded   *prometheus.CounterVec
	rejected *prometheus.CounterVec
	resolved *prometheus.CounterVec
}

// NewCollector creates the registry collectors and registers them
// on the registerer given.
func NewCollector(registerer prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		loaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "definitions_loaded_total",
			Help:      "Number of chain definitions registered",
		}, []string{"chain"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "definitions_rejected_total",
			Help:      "Number of chain definitions failing validation",
		}, []string{"chain", "reason"}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "types_resolved_total",
			Help:      "Number of type resolutions served",
		}, []string{"chain", "cached"}),
	}

	for _, collector := range []prometheus.Collector{c.loaded, c.rejected, c.resolved} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}
	return c, nil
}

// DefinitionLoaded implements overrides.Metrics.
func (c *Collector) DefinitionLoaded(chain string) {
	c.loaded.WithLabelValues(chain).Inc()
}

// DefinitionRejected implements overrides.Metrics.
func (c *Collector) DefinitionRejected(chain, reason string) {
	c.rejected.WithLabelValues(chain, reason).Inc()
}

// TypeResolved implements overrides.Metrics.
func (c *Collector) TypeResolved(chain string, cached bool) {
	c.resolved.WithLabelValues(chain, strconv.FormatBool(cached)).Inc()
}
