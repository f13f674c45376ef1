// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides an httptimeout event handler which records
// dial outcomes and timeouts as Prometheus metrics.
//
//	collector := metrics.NewCollector("myapp")
//	prometheus.MustRegister(collector)
//	handlers := &httptimeout.HandlerGroup{}
//	collector.Install(handlers)
//	connector.Handlers = handlers
package metrics
