// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package zaplog

import (
	"go.uber.org/zap"

	"github.com/gogama/httptimeout"
	"github.com/gogama/httptimeout/transient"
)

// A Handler logs httptimeout events to a zap logger.
type Handler struct {
	Logger *zap.Logger
}

// NewHandler returns a Handler logging to logger.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		panic("httptimeout/zaplog: nil logger")
	}

	return &Handler{Logger: logger}
}

// Install pushes a Handler logging to logger onto the back of every
// event handler chain in g.
func Install(g *httptimeout.HandlerGroup, logger *zap.Logger) *Handler {
	h := NewHandler(logger)
	for _, evt := range httptimeout.Events() {
		g.PushBack(evt, h)
	}
	return h
}

// Handle writes one log entry for the event.
func (h *Handler) Handle(evt httptimeout.Event, op *httptimeout.Op) {
	fields := []zap.Field{
		zap.Stringer("event", evt),
		zap.String("network", op.Network),
		zap.String("address", op.Address),
	}
	if op.Timeout > 0 {
		fields = append(fields, zap.Duration("timeout", op.Timeout))
	}

	switch evt {
	case httptimeout.BeforeConnect:
		h.Logger.Debug("connecting", fields...)
	case httptimeout.AfterConnect:
		fields = append(fields, zap.Duration("elapsed", op.Duration()))
		if op.Err != nil {
			fields = append(fields,
				zap.Stringer("transience", transient.Categorize(op.Err)),
				zap.Error(op.Err))
			h.Logger.Debug("connect failed", fields...)
		} else {
			h.Logger.Debug("connected", fields...)
		}
	case httptimeout.AfterConnectTimeout:
		h.Logger.Warn("connect timed out", fields...)
	case httptimeout.AfterReadTimeout:
		h.Logger.Warn("read timed out", fields...)
	case httptimeout.AfterWriteTimeout:
		h.Logger.Warn("write timed out", fields...)
	}
}
