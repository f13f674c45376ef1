// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogama/httptimeout"
	"github.com/gogama/httptimeout/transient"
)

const subsystem = "httptimeout"

// A Collector is both a prometheus.Collector and an httptimeout event
// handler. It exposes three metrics:
//
// • <namespace>_httptimeout_connects_total, a counter of dials labelled
// by result: "ok", or the transient.Category name of the dial error;
//
// • <namespace>_httptimeout_timeouts_total, a counter of timeouts
// labelled by op: "connect", "read", or "write"; and
//
// • <namespace>_httptimeout_connect_duration_seconds, a histogram of
// dial durations.
type Collector struct {
	connects        *prometheus.CounterVec
	timeouts        *prometheus.CounterVec
	connectDuration prometheus.Histogram
}

// NewCollector constructs a Collector whose metric names are prefixed
// with namespace. The namespace may be empty.
func NewCollector(namespace string) *Collector {
	return &Collector{
		connects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "connects_total",
				Help:      "Total number of dials, by result",
			},
			[]string{"result"},
		),
		timeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "timeouts_total",
				Help:      "Total number of connect, read, and write timeouts",
			},
			[]string{"op"},
		),
		connectDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "connect_duration_seconds",
				Help:      "Duration of dials, successful or not",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Install pushes the Collector onto the back of the event handler
// chains in g for every event the Collector records.
func (c *Collector) Install(g *httptimeout.HandlerGroup) {
	g.PushBack(httptimeout.AfterConnectTimeout, c)
	g.PushBack(httptimeout.AfterConnect, c)
	g.PushBack(httptimeout.AfterReadTimeout, c)
	g.PushBack(httptimeout.AfterWriteTimeout, c)
}

// Handle records the event.
func (c *Collector) Handle(evt httptimeout.Event, op *httptimeout.Op) {
	switch evt {
	case httptimeout.AfterConnect:
		result := "ok"
		if op.Err != nil {
			result = transient.Categorize(op.Err).String()
		}
		c.connects.WithLabelValues(result).Inc()
		c.connectDuration.Observe(op.Duration().Seconds())
	case httptimeout.AfterConnectTimeout:
		c.timeouts.WithLabelValues("connect").Inc()
	case httptimeout.AfterReadTimeout:
		c.timeouts.WithLabelValues("read").Inc()
	case httptimeout.AfterWriteTimeout:
		c.timeouts.WithLabelValues("write").Inc()
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.connects.Describe(ch)
	c.timeouts.Describe(ch)
	c.connectDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.connects.Collect(ch)
	c.timeouts.Collect(ch)
	c.connectDuration.Collect(ch)
}
