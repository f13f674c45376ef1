// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies connection errors as transient or
// non-transient. This is handy for writing retry policies on top of a
// timeout-enforcing connector, and for other purposes such as bucketing
// error metrics.
//
// The timeouts enforced by package httptimeout classify as follows: a
// connect timeout is Timeout, a read timeout is ConnReset, and a write
// timeout is BrokenPipe. Read and write timeouts thus land in the same
// buckets as a connection the peer dropped, which is how HTTP clients
// already treat them.
//
// Package transient is extremely lightweight, as it depends only on
// the standard library packages "errors" and "syscall", so it doesn't
// bring any significant dependencies when imported as a standalone
// package.
package transient
