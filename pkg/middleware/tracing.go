package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/arkenidar/dhtml/pkg/server"
)

// TracingConfig configures the OpenTelemetry tracing middleware.
type TracingConfig struct {
	// TracerName is the name passed to otel.Tracer
	// (default: "github.com/arkenidar/dhtml").
	TracerName string

	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider
}

// TracingOption configures the tracing middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.TracerProvider = tp
	}
}

// Tracing creates middleware that starts one server span per demo event.
//
// Spans are named "dhtml.<demo>.<kind>" and carry the demo name, the
// operation kind and index, and the session ID as attributes. Handler
// errors are recorded on the span and set its status to Error.
func Tracing(opts ...TracingOption) server.Middleware {
	config := TracingConfig{
		TracerName: "github.com/arkenidar/dhtml",
	}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return func(next server.Handler) server.Handler {
		return func(ctx context.Context, ev *server.EventInfo) error {
			ctx, span := tracer.Start(ctx, "dhtml."+ev.Demo+"."+ev.Op.Kind,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("dhtml.demo", ev.Demo),
					attribute.String("dhtml.op.kind", ev.Op.Kind),
					attribute.Int("dhtml.op.index", ev.Op.Index),
					attribute.String("dhtml.session.id", ev.SessionID),
				),
			)
			defer span.End()

			err := next(ctx, ev)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}

			return err
		}
	}
}
