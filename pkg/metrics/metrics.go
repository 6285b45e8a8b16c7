/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metrics

import (
	"time"
)

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	PhaseParse = "parse"
	PhasePre   = "pre_validate"
	PhaseRoute = "route"
	PhasePost  = "post_validate"

	ResultPass   = "pass"
	ResultReject = "reject"
	ResultError  = "error"
)

const _namespace = "ddlguard"

type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Collector records the outcomes of validations.
type Collector struct {
	registry    Registry
	validations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics into the registry.
func NewCollector(r Registry) *Collector {
	c := &Collector{
		registry: r,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "validation_total",
			Help:      "Total number of validation phases by statement, phase and result.",
		}, []string{"statement", "phase", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Name:      "check_duration_seconds",
			Help:      "Duration of checking a statement.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"statement"}),
	}
	r.MustRegister(c.validations, c.duration)
	return c
}

// NewDefaultCollector creates a Collector with a private registry.
func NewDefaultCollector() *Collector {
	return NewCollector(prometheus.NewRegistry())
}

// Registry returns the registry which holds the metrics.
func (c *Collector) Registry() Registry {
	return c.registry
}

// RecordValidation counts the result of one phase.
func (c *Collector) RecordValidation(statement, phase, result string) {
	c.validations.WithLabelValues(statement, phase, result).Inc()
}

// ObserveDuration records the duration of one check.
func (c *Collector) ObserveDuration(statement string, d time.Duration) {
	c.duration.WithLabelValues(statement).Observe(d.Seconds())
}
