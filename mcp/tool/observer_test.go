package tool

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObserver(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	exporter := tracetest.NewInMemoryExporter()
	observer, err := NewProviderObserver(
		sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)),
	)
	require.NoError(t, err)

	_, done := observer.Start(ctx, "seqstat", "docker")
	done(nil)
	_, done = observer.Start(ctx, "seqstat", "podman")
	done(errors.New("exit status 1"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	totals := map[string]int64{}
	var latencyCount uint64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, point := range data.DataPoints {
					totals[m.Name] += point.Value
				}
			case metricdata.Histogram[float64]:
				for _, point := range data.DataPoints {
					latencyCount += point.Count
				}
			}
		}
	}
	assert.EqualValues(t, 2, totals["coala.tool.invocations"])
	assert.EqualValues(t, 1, totals["coala.tool.failures"])
	assert.EqualValues(t, 2, latencyCount)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.EqualValues(t, "tool.invoke", spans[0].Name)
	assert.EqualValues(t, codes.Ok, spans[0].Status.Code)
	assert.EqualValues(t, codes.Error, spans[1].Status.Code)
	assert.EqualValues(t, "exit status 1", spans[1].Status.Description)
}

func TestObserver_Registry(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	observer, err := NewProviderObserver(
		sdkmetric.NewMeterProvider(),
		sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)),
	)
	require.NoError(t, err)

	adapter := newSeqAdapter(t, &fakeEngine{}, WithObserver(observer))
	_, err = adapter.Call(context.Background(), map[string]interface{}{"seq": "missing.fa"})
	require.NoError(t, err)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	found := false
	for _, attr := range spans[0].Attributes {
		if attr.Key == "tool_name" {
			found = attr.Value.AsString() == "seqstat"
		}
	}
	assert.True(t, found)
}
