// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httptimeout adds connect, read, and write timeouts to any dialer
so that an HTTP client fails fast instead of hanging when a peer is
unreachable, accepts a connection but never responds, or stalls in the
middle of a transfer.

Wrap a dialer in a Connector and plug it into an HTTP transport:

	c := httptimeout.NewConnector(&net.Dialer{})
	c.SetConnectTimeout(5 * time.Second)
	c.SetReadTimeout(5 * time.Second)
	c.SetWriteTimeout(5 * time.Second)
	client, err := httptimeout.NewClient(c, nil)
	...
	resp, err := client.Get("https://www.example.com")

The connect timeout bounds each dial. The read and write timeouts bound
each individual Read and Write on the resulting connection: every call
gets a fresh timer, so a long-lived keep-alive connection is never cut
off for its total age, only for a single stalled operation. A zero
duration means no timeout, and a Connector with no timeouts behaves
exactly like the dialer it wraps.

A connect timeout is reported as a net.OpError whose Timeout method
returns true and which matches ErrConnectTimeout. Read and write
timeouts are reported as broken connections, matching
syscall.ECONNRESET and syscall.EPIPE respectively, which is how HTTP
stacks treat a connection that stops working mid-request.
Use errors.Is with ErrReadTimeout or ErrWriteTimeout to tell them apart
from a genuine reset.

To observe timeouts, install handlers into the Connector's handler
group. Packages zaplog and metrics provide ready-made handlers for
structured logging and Prometheus metrics:

	handlers := &httptimeout.HandlerGroup{}
	zaplog.Install(handlers, logger)
	c.Handlers = handlers
*/
package httptimeout
