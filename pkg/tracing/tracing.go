// Package tracing installs the process-wide OpenTelemetry tracer provider.
//
// When stdout export is disabled the global no-op provider stays in place,
// so spans opened via otel.Tracer cost next to nothing.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Options configures Init.
type Options struct {
	// ServiceName is attached to every span as service.name.
	ServiceName string
	// Stdout enables the pretty-printed stdout exporter.
	Stdout bool
	// Writer overrides os.Stdout for the exporter.
	Writer io.Writer
}

// Init installs a tracer provider according to opts and returns its shutdown hook.
func Init(_ context.Context, opts Options) (ShutdownFunc, error) {
	if !opts.Stdout {
		return noopShutdown, nil
	}
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return noopShutdown, fmt.Errorf("create stdout exporter: %w", err)
	}
	name := opts.ServiceName
	if name == "" {
		name = "wagegap"
	}
	res := sdkresource.NewSchemaless(attribute.String("service.name", name))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
