// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

var (
	// ErrConnectTimeout matches, under errors.Is, every error returned
	// when a dial exceeds the Connector's connect timeout.
	ErrConnectTimeout = errors.New("httptimeout: connect timed out")

	// ErrReadTimeout matches, under errors.Is, every error returned when
	// a Read exceeds the connection's read timeout.
	ErrReadTimeout = errors.New("httptimeout: read timed out")

	// ErrWriteTimeout matches, under errors.Is, every error returned when
	// a Write exceeds the connection's write timeout.
	ErrWriteTimeout = errors.New("httptimeout: write timed out")
)

type connectTimeoutError struct {
	timeout time.Duration
}

func (e *connectTimeoutError) Error() string {
	return fmt.Sprintf("connect timed out after %v", e.timeout)
}

func (e *connectTimeoutError) Timeout() bool {
	return true
}

func (e *connectTimeoutError) Temporary() bool {
	return true
}

func (e *connectTimeoutError) Is(target error) bool {
	return target == ErrConnectTimeout || target == syscall.ETIMEDOUT
}

// brokenConnError reports a read or write timeout in the same shape as
// a connection reset or broken pipe. Its message is the errno's message.
type brokenConnError struct {
	errno syscall.Errno
	cause error
}

func (e *brokenConnError) Error() string {
	return e.errno.Error()
}

func (e *brokenConnError) Temporary() bool {
	return e.errno.Temporary()
}

func (e *brokenConnError) Unwrap() []error {
	return []error{e.errno, e.cause}
}

func newBrokenConnError(syscallName string, errno syscall.Errno, cause error) error {
	return os.NewSyscallError(syscallName, &brokenConnError{errno: errno, cause: cause})
}

// dialAddr lets a connect timeout name the address being dialed without
// resolving it.
type dialAddr struct {
	network string
	address string
}

func (a dialAddr) Network() string {
	return a.network
}

func (a dialAddr) String() string {
	return a.address
}
