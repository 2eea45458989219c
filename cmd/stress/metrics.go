/*
 * NDMap - Multi-Dimensional Maps
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "ndmap_stress"

type metrics struct {
	ops           *prometheus.CounterVec
	entries       *prometheus.GaugeVec
	verifications prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "ops_total",
				Help:      "Number of operations applied to each map variant.",
			},
			[]string{"map", "op"},
		),
		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "entries",
				Help:      "Number of stored values in each map variant.",
			},
			[]string{"map"},
		),
		verifications: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "verifications_total",
				Help:      "Number of completed full verifications.",
			},
		),
	}

	reg.MustRegister(m.ops, m.entries, m.verifications)

	return m
}

func (m *metrics) op(mapName, op string) {
	m.ops.WithLabelValues(mapName, op).Inc()
}

func (m *metrics) size(mapName string, n int) {
	m.entries.WithLabelValues(mapName).Set(float64(n))
}
