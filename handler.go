// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

// A HandlerGroup is a group of event handler chains which can be
// installed in a Connector.
//
// A HandlerGroup must be fully populated before the Connector it is
// installed in is first used. Connections dialed by the Connector keep
// running the group's handlers for their whole lifetime.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("httptimeout: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("httptimeout: unknown event")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, op *Op) {
	i := int(evt)
	if i < len(g.handlers) {
		run(g.handlers[i], evt, op)
	}
}

func run(chain []Handler, evt Event, op *Op) {
	for _, h := range chain {
		h.Handle(evt, op)
	}
}

// A Handler handles the occurrence of an event during a dial or on an
// established connection.
//
// Read and write timeout events fire on whichever goroutine is using
// the connection, so handlers must be safe for concurrent use.
type Handler interface {
	Handle(Event, *Op)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *Op)

// Handle calls f(evt, op).
func (f HandlerFunc) Handle(evt Event, op *Op) {
	f(evt, op)
}
