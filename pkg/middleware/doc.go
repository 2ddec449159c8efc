// Package middleware provides observability wrappers for demo event
// handling: Prometheus metrics and OpenTelemetry tracing.
//
// Both return a server.Middleware and are wired into the server's
// event chain at startup:
//
//	cfg := server.DefaultConfig()
//	cfg.Middleware = []server.Middleware{
//	    middleware.Metrics(),
//	    middleware.Tracing(),
//	}
package middleware
