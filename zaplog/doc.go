// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package zaplog provides an httptimeout event handler which writes
// structured log entries using go.uber.org/zap.
//
// Dials are logged at debug level. Connect, read, and write timeouts
// are logged at warn level.
//
//	handlers := &httptimeout.HandlerGroup{}
//	zaplog.Install(handlers, logger)
//	connector.Handlers = handlers
package zaplog
