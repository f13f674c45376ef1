// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import "time"

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Connector to observe dials and
// timeouts.
type Event int

const (
	// BeforeConnect identifies the event that occurs before each dial.
	//
	// When Connector fires BeforeConnect, the op's network, address,
	// connect timeout, and start time are set.
	BeforeConnect Event = iota
	// AfterConnectTimeout identifies the event that occurs after a dial
	// is abandoned because the connect timeout elapsed.
	//
	// When Connector fires AfterConnectTimeout, the op's error field is
	// set to the connect timeout error and its end time is set.
	AfterConnectTimeout
	// AfterConnect identifies the event that occurs after each dial is
	// concluded, regardless of whether it concluded successfully or not.
	//
	// Note that AfterConnect always occurs after AfterConnectTimeout,
	// if the dial timed out.
	AfterConnect
	// AfterReadTimeout identifies the event that occurs after a Read on
	// a Conn fails because the read timeout elapsed.
	//
	// When Conn fires AfterReadTimeout, the op's timeout field holds
	// the read timeout and its error field holds the error Read is
	// about to return. AfterReadTimeout may fire concurrently with
	// AfterWriteTimeout, and concurrently across connections.
	AfterReadTimeout
	// AfterWriteTimeout identifies the event that occurs after a Write
	// on a Conn fails because the write timeout elapsed.
	//
	// When Conn fires AfterWriteTimeout, the op's timeout field holds
	// the write timeout and its error field holds the error Write is
	// about to return.
	AfterWriteTimeout
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeConnect",
	"AfterConnectTimeout",
	"AfterConnect",
	"AfterReadTimeout",
	"AfterWriteTimeout",
}

// Events returns a slice containing all events which can be fired by
// a Connector or a Conn, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeConnect,
		AfterConnectTimeout,
		AfterConnect,
		AfterReadTimeout,
		AfterWriteTimeout,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}

// An Op describes the dial, read, or write an event fired for.
//
// Handlers should treat an Op as read-only.
type Op struct {
	// Network is the network name, for example "tcp".
	Network string
	// Address is the address dialed, or for a read or write timeout
	// on a connection not produced by a Connector, the remote address.
	Address string
	// Timeout is the timeout in force for the operation. It is zero
	// for a dial without a connect timeout.
	Timeout time.Duration
	// Start is the time the operation started.
	Start time.Time
	// End is the time the operation ended. It contains the zero value
	// during BeforeConnect.
	End time.Time
	// Err is the error the operation ended with, if any.
	Err error
}

// Duration returns the duration of the operation, or zero if it has
// not ended yet.
func (op *Op) Duration() time.Duration {
	if op.End.IsZero() {
		return 0
	}

	return op.End.Sub(op.Start)
}
