// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize().
//
// The category Not means the error is not transient from the perspective
// of using a connection, or in other words that a retry on a new
// connection after encountering this error is very unlikely to succeed.
//
// All other categories indicate the error is transient, or in other
// words that a retry on a new connection has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error, or no error.
	Not Category = iota
	// Timeout indicates a client-side timeout, including a connect
	// timeout. The server may be going through a temporary period of
	// slowness, or a future attempt may succeed waiting longer.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection, and
	// corresponds to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal may be a permanent condition, it is
	// classified as transient because it can happen if the service
	// running on the remote host is in the process of starting or
	// restarting.
	//
	// Function Categorize() will return ConnRefused if the error is not
	// a Timeout, and the error or any of its wrapped causes is equal to
	// syscall.ECONNREFUSED.
	ConnRefused
	// ConnReset indicates the connection was reset while reading, and
	// corresponds to the POSIX error code ECONNRESET. Read timeouts
	// enforced by package httptimeout fall into this category.
	//
	// Function Categorize() will return ConnReset if the error is not a
	// Timeout, and the error or any of its wrapped causes is equal to
	// syscall.ECONNRESET.
	ConnReset
	// BrokenPipe indicates the connection broke while writing, and
	// corresponds to the POSIX error code EPIPE. Write timeouts enforced
	// by package httptimeout fall into this category.
	//
	// Function Categorize() will return BrokenPipe if the error is not a
	// Timeout, and the error or any of its wrapped causes is equal to
	// syscall.EPIPE.
	BrokenPipe
	categorySentinel
)

var categoryNames = []string{
	"not",
	"timeout",
	"conn_refused",
	"conn_reset",
	"broken_pipe",
}

// String returns a short snake_case name for the category, suitable
// for use as a metric label.
func (cat Category) String() string {
	if cat < 0 || cat >= categorySentinel {
		return "unknown"
	}

	return categoryNames[cat]
}

// Categorize returns the transience category of the given error. All
// non-nil transient errors result in a transience category other than
// Not. A nil error, and an error that is not transient, both produce
// the return value Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself. However, Categorize never
// checks if an error has a Temporary() function that returns true, as
// the semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.EPIPE:
			return BrokenPipe
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
