// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"context"
	"net"
	"sync/atomic"
	"time"
)

// A Dialer establishes network connections in the same manner as the
// GoLang standard library net.Dialer from the net package.
//
// The DialContext method must follow the contract documented on
// net.Dialer. Dialers that honor context cancellation release abandoned
// connection attempts sooner after a connect timeout.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// The DialerFunc type is an adapter to allow the use of ordinary
// functions as dialers. If f is a function with appropriate signature,
// then DialerFunc(f) is a Dialer that calls f.
type DialerFunc func(ctx context.Context, network, address string) (net.Conn, error)

// DialContext calls f(ctx, network, address).
func (f DialerFunc) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return f(ctx, network, address)
}

var defaultDialer = &net.Dialer{KeepAlive: 30 * time.Second}

var emptyHandlers = HandlerGroup{}

// A Connector is a Dialer that enforces a connect timeout on each dial,
// and a read and write timeout on each individual Read and Write of the
// connections it returns. Its zero value is a valid configuration with
// no timeouts, which dials using a default net.Dialer.
//
// Timeouts are set with SetConnectTimeout, SetReadTimeout, and
// SetWriteTimeout. A zero or negative duration means no timeout. Each
// dial takes a snapshot of the current settings, so a setter only
// affects dials started after it returns; it is safe, though rarely
// useful, to call the setters while dials are in flight.
//
// A Connector is safe for concurrent use by multiple goroutines. It
// must not be copied after first use.
type Connector struct {
	// Dialer specifies the underlying dialer used to establish
	// connections.
	//
	// If Dialer is nil, a net.Dialer with a 30 second TCP keep-alive
	// period is used.
	Dialer Dialer
	// Handlers allows custom handler chains to be invoked when
	// connections are dialed and when timeouts occur.
	//
	// If Handlers is nil, no custom handlers will be run. Handlers
	// must be installed before the Connector is first used.
	Handlers *HandlerGroup

	connectTimeout atomic.Int64
	readTimeout    atomic.Int64
	writeTimeout   atomic.Int64
}

// NewConnector constructs a Connector which dials with d and enforces
// no timeouts until they are set.
func NewConnector(d Dialer) *Connector {
	if d == nil {
		panic("httptimeout: nil dialer")
	}

	return &Connector{Dialer: d}
}

// SetConnectTimeout sets the timeout for establishing a connection.
//
// Default is no timeout.
func (c *Connector) SetConnectTimeout(d time.Duration) {
	c.connectTimeout.Store(int64(d))
}

// SetReadTimeout sets the timeout for each individual read on
// connections dialed afterward.
//
// Default is no timeout.
func (c *Connector) SetReadTimeout(d time.Duration) {
	c.readTimeout.Store(int64(d))
}

// SetWriteTimeout sets the timeout for each individual write on
// connections dialed afterward.
//
// Default is no timeout.
func (c *Connector) SetWriteTimeout(d time.Duration) {
	c.writeTimeout.Store(int64(d))
}

// ConnectTimeout returns the current connect timeout.
func (c *Connector) ConnectTimeout() time.Duration {
	return time.Duration(c.connectTimeout.Load())
}

// ReadTimeout returns the current read timeout.
func (c *Connector) ReadTimeout() time.Duration {
	return time.Duration(c.readTimeout.Load())
}

// WriteTimeout returns the current write timeout.
func (c *Connector) WriteTimeout() time.Duration {
	return time.Duration(c.writeTimeout.Load())
}

// Dial connects to the address on the named network using the
// background context.
func (c *Connector) Dial(network, address string) (net.Conn, error) {
	return c.DialContext(context.Background(), network, address)
}

// DialContext connects to the address on the named network using the
// underlying dialer, racing the dial against the connect timeout if
// one is set.
//
// If the dial completes first, any error it returns is passed through
// unchanged, and a successful connection is wrapped in a *Conn carrying
// the current read and write timeouts. If the connect timeout elapses
// first, the dial is abandoned and a *net.OpError is returned whose
// Timeout method reports true and which matches ErrConnectTimeout. No
// retry is ever attempted.
func (c *Connector) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	connectTimeout := c.ConnectTimeout()
	readTimeout := c.ReadTimeout()
	writeTimeout := c.WriteTimeout()
	dialer := c.dialer()
	handlers := c.handlers()

	op := &Op{
		Network: network,
		Address: address,
		Timeout: connectTimeout,
		Start:   time.Now(),
	}
	handlers.run(BeforeConnect, op)

	var conn net.Conn
	var timedOut bool
	var err error
	if connectTimeout > 0 {
		conn, timedOut, err = dialWithin(ctx, connectTimeout, dialer, network, address)
	} else {
		conn, err = dialer.DialContext(ctx, network, address)
	}

	op.End = time.Now()
	op.Err = err
	if err != nil {
		if timedOut {
			handlers.run(AfterConnectTimeout, op)
		}
		handlers.run(AfterConnect, op)
		return nil, err
	}

	handlers.run(AfterConnect, op)
	tc := NewConn(conn, readTimeout, writeTimeout)
	tc.network = network
	tc.address = address
	tc.handlers = handlers
	return tc, nil
}

func (c *Connector) dialer() Dialer {
	if c.Dialer == nil {
		return defaultDialer
	}

	return c.Dialer
}

func (c *Connector) handlers() *HandlerGroup {
	if c.Handlers == nil {
		return &emptyHandlers
	}

	return c.Handlers
}
