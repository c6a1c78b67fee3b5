package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const tracerName = "github.com/robert-malhotra/go-fits/cmd/fitsinfo"

// startTracing installs a tracer provider that prints spans to stderr and
// opens a span covering the whole command.
func (a *app) startTracing(cmd *cobra.Command) error {
	if !a.cfg.Trace.Enabled {
		return nil
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(cmd.ErrOrStderr()), stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}
	a.tracer = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	otel.SetTracerProvider(a.tracer)

	ctx, span := a.tracer.Tracer(tracerName).Start(cmd.Context(), "fitsinfo "+cmd.Name())
	a.span = span
	cmd.SetContext(ctx)
	return nil
}

func (a *app) stopTracing() error {
	if a.tracer == nil {
		return nil
	}
	a.span.End()
	if err := a.tracer.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("failed to flush traces: %w", err)
	}
	return nil
}
