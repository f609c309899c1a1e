// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/arrowhead/internal/cache"
)

// Metrics are the Prometheus collectors of the mesh service.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	vertices prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. When
// meshes is not nil its hit and build counts are exported too, along with
// the occupancy of every tier implementing cache.Sized.
func NewMetrics(reg prometheus.Registerer, meshes *cache.Meshes) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arrowhead_requests_total",
				Help: "Mesh requests by route, result source and status code.",
			},
			[]string{"route", "source", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "arrowhead_mesh_duration_seconds",
				Help:    "Time to obtain a mesh, by variant and source.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"variant", "source"},
		),
		vertices: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "arrowhead_vertices_served_total",
				Help: "Vertices sent in mesh responses.",
			},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.vertices)
	if meshes != nil {
		registerCache(reg, meshes)
	}
	return m
}

func registerCache(reg prometheus.Registerer, meshes *cache.Meshes) {
	reg.MustRegister(
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "arrowhead_cache_hits_total",
				Help: "Meshes found in a cache tier.",
			},
			func() float64 {
				hits, _ := meshes.Stats()
				return float64(hits)
			},
		),
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "arrowhead_cache_builds_total",
				Help: "Meshes generated after missing every tier.",
			},
			func() float64 {
				_, misses := meshes.Stats()
				return float64(misses)
			},
		),
	)
	for _, tier := range meshes.Tiers() {
		sized, ok := tier.(cache.Sized)
		if !ok {
			continue
		}
		labels := prometheus.Labels{"tier": tier.Name()}
		reg.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name:        "arrowhead_cache_entries",
					Help:        "Entries held by a cache tier.",
					ConstLabels: labels,
				},
				func() float64 { return float64(sized.Len()) },
			),
			prometheus.NewCounterFunc(
				prometheus.CounterOpts{
					Name:        "arrowhead_cache_evictions_total",
					Help:        "Entries a cache tier dropped to stay within its limit.",
					ConstLabels: labels,
				},
				func() float64 { return float64(sized.Evictions()) },
			),
		)
	}
}
