package server

import (
	"context"

	"github.com/arkenidar/dhtml/pkg/demo"
)

// EventInfo describes one client op as it moves through the middleware
// chain.
type EventInfo struct {
	// SessionID identifies the session the op arrived on.
	SessionID string

	// Demo is the demo's registry name.
	Demo string

	// Op is the cell mutation being applied.
	Op demo.Op
}

// Handler processes one client op.
type Handler func(ctx context.Context, ev *EventInfo) error

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// chain applies middleware so the first entry is outermost.
func chain(h Handler, mw []Middleware) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
