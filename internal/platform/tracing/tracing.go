package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"saku/internal/platform/config"
)

// Shutdown flushes pending spans.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// NewProvider builds a tracer provider for cfg writing spans to w. It
// returns nil for the "none" exporter.
func NewProvider(cfg config.TraceConfig, w io.Writer) (*sdktrace.TracerProvider, error) {
	switch cfg.Exporter {
	case "", "none":
		return nil, nil
	case "stdout":
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create exporter: %w", err)
		}
		res := resource.NewWithAttributes("", attribute.String("service.name", "saku"))
		return sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		), nil
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
}

// Init installs the provider for cfg as the global tracer provider. With
// the "none" exporter the global no-op provider is left in place.
func Init(cfg config.TraceConfig, w io.Writer) (Shutdown, error) {
	tp, err := NewProvider(cfg, w)
	if err != nil {
		return nil, err
	}
	if tp == nil {
		return noop, nil
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
