// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"errors"
	"net"
	"os"
	"sync/atomic"
	"syscall"
	"time"
)

// A Conn is a net.Conn which bounds each individual Read by a read
// timeout and each individual Write by a write timeout.
//
// Every Read arms a fresh read deadline on the underlying connection
// just before reading, and every Write arms a fresh write deadline just
// before writing, so the timeouts are per operation rather than
// cumulative over the life of the connection. The read and write
// deadlines are independent: a stalled Write never causes a concurrent
// Read to fail early, and vice versa. A zero or negative timeout means
// the operation is passed straight through.
//
// When a timeout elapses, the operation fails with a *net.OpError which
// looks like a connection reset (Read) or broken pipe (Write) and which
// matches ErrReadTimeout or ErrWriteTimeout. Any bytes the underlying
// connection did transfer are still reported. After a timeout the
// connection should be considered broken and closed.
//
// Because Read and Write manage the underlying deadlines, calls to
// SetDeadline, SetReadDeadline, and SetWriteDeadline only hold until
// the next timed operation in the same direction.
type Conn struct {
	net.Conn

	readTimeout  atomic.Int64
	writeTimeout atomic.Int64

	network  string
	address  string
	handlers *HandlerGroup
}

// NewConn returns a new Conn wrapping c with the given read and write
// timeouts.
func NewConn(c net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	if c == nil {
		panic("httptimeout: nil conn")
	}

	tc := &Conn{
		Conn:     c,
		handlers: &emptyHandlers,
	}
	tc.readTimeout.Store(int64(readTimeout))
	tc.writeTimeout.Store(int64(writeTimeout))
	return tc
}

// NetConn returns the underlying connection.
func (c *Conn) NetConn() net.Conn {
	return c.Conn
}

// ReadTimeout returns the current read timeout.
func (c *Conn) ReadTimeout() time.Duration {
	return time.Duration(c.readTimeout.Load())
}

// SetReadTimeout sets the read timeout for subsequent reads.
//
// Setting a zero or negative timeout also clears any read deadline
// left over from a previous read.
func (c *Conn) SetReadTimeout(d time.Duration) error {
	c.readTimeout.Store(int64(d))
	if d <= 0 {
		return c.Conn.SetReadDeadline(time.Time{})
	}
	return nil
}

// WriteTimeout returns the current write timeout.
func (c *Conn) WriteTimeout() time.Duration {
	return time.Duration(c.writeTimeout.Load())
}

// SetWriteTimeout sets the write timeout for subsequent writes.
//
// Setting a zero or negative timeout also clears any write deadline
// left over from a previous write.
func (c *Conn) SetWriteTimeout(d time.Duration) error {
	c.writeTimeout.Store(int64(d))
	if d <= 0 {
		return c.Conn.SetWriteDeadline(time.Time{})
	}
	return nil
}

// Read reads data from the underlying connection, failing if the read
// timeout elapses before any data or error arrives.
func (c *Conn) Read(b []byte) (int, error) {
	d := c.ReadTimeout()
	if d <= 0 {
		return c.Conn.Read(b)
	}

	start := time.Now()
	if err := c.Conn.SetReadDeadline(start.Add(d)); err != nil {
		return 0, err
	}
	n, err := c.Conn.Read(b)
	if err != nil && deadlineExceeded(err) {
		err = c.timedOut(AfterReadTimeout, start, d, err)
	}
	return n, err
}

// Write writes data to the underlying connection, failing if the
// write timeout elapses before the write completes.
func (c *Conn) Write(b []byte) (int, error) {
	d := c.WriteTimeout()
	if d <= 0 {
		return c.Conn.Write(b)
	}

	start := time.Now()
	if err := c.Conn.SetWriteDeadline(start.Add(d)); err != nil {
		return 0, err
	}
	n, err := c.Conn.Write(b)
	if err != nil && deadlineExceeded(err) {
		err = c.timedOut(AfterWriteTimeout, start, d, err)
	}
	return n, err
}

func (c *Conn) timedOut(evt Event, start time.Time, d time.Duration, cause error) error {
	opErr := &net.OpError{
		Net:    c.networkName(),
		Source: c.LocalAddr(),
		Addr:   c.RemoteAddr(),
	}
	var inner *net.OpError
	if errors.As(cause, &inner) {
		opErr.Net = inner.Net
		opErr.Source = inner.Source
		opErr.Addr = inner.Addr
	}
	if evt == AfterReadTimeout {
		opErr.Op = "read"
		opErr.Err = newBrokenConnError("read", syscall.ECONNRESET, ErrReadTimeout)
	} else {
		opErr.Op = "write"
		opErr.Err = newBrokenConnError("write", syscall.EPIPE, ErrWriteTimeout)
	}

	c.handlers.run(evt, &Op{
		Network: opErr.Net,
		Address: c.addressName(),
		Timeout: d,
		Start:   start,
		End:     time.Now(),
		Err:     opErr,
	})
	return opErr
}

func (c *Conn) networkName() string {
	if c.network != "" {
		return c.network
	}
	if addr := c.RemoteAddr(); addr != nil {
		return addr.Network()
	}
	return ""
}

func (c *Conn) addressName() string {
	if c.address != "" {
		return c.address
	}
	if addr := c.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

func deadlineExceeded(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
