// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"context"
	"net"
	"time"
)

type dialResult struct {
	conn net.Conn
	err  error
}

// dialWithin races a dial against a one-shot timer of duration d.
//
// If the dial finishes first, its result is returned unchanged. If the
// timer fires first, or ctx is done first, the dial's context is
// cancelled and the dial is abandoned: the dialing goroutine closes any
// connection it still manages to establish, then exits. When the dial
// result and the timer are ready at the same time, the dial result wins.
//
// The timedOut return value reports whether the timer won the race.
func dialWithin(ctx context.Context, d time.Duration, dialer Dialer, network, address string) (conn net.Conn, timedOut bool, err error) {
	dialCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan dialResult)
	abandoned := make(chan struct{})
	go func() {
		conn, err := dialer.DialContext(dialCtx, network, address)
		select {
		case done <- dialResult{conn, err}:
		case <-abandoned:
			if conn != nil {
				_ = conn.Close()
			}
		}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.conn, false, r.err
	case <-timer.C:
	case <-ctx.Done():
	}

	select {
	case r := <-done:
		return r.conn, false, r.err
	default:
		close(abandoned)
	}

	opErr := &net.OpError{
		Op:   "dial",
		Net:  network,
		Addr: dialAddr{network, address},
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		opErr.Err = ctxErr
		return nil, false, opErr
	}
	opErr.Err = &connectTimeoutError{timeout: d}
	return nil, true, opErr
}
