// Package server hosts the reactive examples over HTTP and WebSocket.
//
// Each page under /demo/{name} is a thin HTML shell; the cells,
// bindings, and sinks live server-side in a per-connection Session.
// The client sends cell mutations as JSON ops over /ws/{name}, the
// session applies them, and every resulting sink write is pushed back
// as a (target, value) message for the shell to render.
//
// Event handling runs through a Middleware chain so metrics and
// tracing can observe every op without the session knowing about
// either.
package server
