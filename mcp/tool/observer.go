package tool

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentation = "github.com/coala-info/coala/mcp/tool"

// Observer records invocations into OpenTelemetry.
type Observer struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	failures    metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewObserver creates an observer bound to the provided meter and tracer.
func NewObserver(meter metric.Meter, tracer trace.Tracer) (*Observer, error) {
	invocations, err := meter.Int64Counter(
		"coala.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"coala.tool.failures",
		metric.WithDescription("Number of failed tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"coala.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &Observer{tracer: tracer, invocations: invocations, failures: failures, latency: latency}, nil
}

// NewProviderObserver creates an observer from meter and tracer providers.
func NewProviderObserver(mp metric.MeterProvider, tp trace.TracerProvider) (*Observer, error) {
	return NewObserver(mp.Meter(instrumentation), tp.Tracer(instrumentation))
}

func nopObserver() *Observer {
	ret, _ := NewProviderObserver(metricnoop.NewMeterProvider(), tracenoop.NewTracerProvider())
	return ret
}

// Start opens an invocation span. The returned function ends it and records
// metrics for the outcome.
func (o *Observer) Start(ctx context.Context, tool string, runner string) (context.Context, func(err error)) {
	attrs := []attribute.KeyValue{
		attribute.String("tool_name", tool),
		attribute.String("runner", runner),
	}
	started := time.Now()
	ctx, span := o.tracer.Start(ctx, "tool.invoke", trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		success := err == nil
		options := metric.WithAttributes(append(attrs, attribute.Bool("success", success))...)
		o.invocations.Add(ctx, 1, options)
		o.latency.Record(ctx, time.Since(started).Seconds(), options)
		if success {
			span.SetStatus(codes.Ok, "")
		} else {
			o.failures.Add(ctx, 1, metric.WithAttributes(attrs...))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
