package bridge_test

import (
	"context"
	"net/http"
	"testing"

	// Packages
	bridge "github.com/mutablelogic/go-toolbridge/pkg/bridge"
	schema "github.com/mutablelogic/go-toolbridge/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	attribute "go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	metricdata "go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func Test_metric_001(t *testing.T) {
	assert := assert.New(t)
	_, err := bridge.New(nil, bridge.WithMeter(nil))
	assert.Error(err)
}

func Test_metric_002(t *testing.T) {
	assert := assert.New(t)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })

	remote := newStub(t, sumHandler)
	b, err := bridge.New([]*schema.Descriptor{sumNumbers(remote.URL)}, bridge.WithMeter(provider.Meter("test")))
	require.NoError(t, err)

	// Two successful calls and one validation failure
	_, err = b.Invoke(context.Background(), "sum_numbers", map[string]any{"number1": 1, "number2": 2})
	assert.NoError(err)
	_, err = b.Invoke(context.Background(), "sum_numbers", map[string]any{"number1": 3, "number2": 4})
	assert.NoError(err)
	_, err = b.Invoke(context.Background(), "sum_numbers", map[string]any{"number1": 3})
	assert.Error(err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	var durations uint64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if m.Name != "toolbridge.invocations" {
					continue
				}
				for _, point := range data.DataPoints {
					outcome, _ := point.Attributes.Value(attribute.Key("outcome"))
					counts[outcome.AsString()] += point.Value
				}
			case metricdata.Histogram[float64]:
				if m.Name != "toolbridge.invocation.duration" {
					continue
				}
				for _, point := range data.DataPoints {
					durations += point.Count
				}
			}
		}
	}
	assert.Equal(int64(2), counts["ok"])
	assert.Equal(int64(1), counts["bad_parameter"])
	assert.Equal(uint64(2), durations)
}

func Test_metric_003(t *testing.T) {
	assert := assert.New(t)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })

	remote := newStub(t, textHandler(http.StatusInternalServerError, "boom"))
	b, err := bridge.New([]*schema.Descriptor{sumNumbers(remote.URL)}, bridge.WithMeter(provider.Meter("test")))
	require.NoError(t, err)

	_, err = b.Invoke(context.Background(), "sum_numbers", map[string]any{"number1": 1, "number2": 2})
	assert.Error(err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var found bool
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == "toolbridge.invocations" {
				for _, point := range data.DataPoints {
					outcome, _ := point.Attributes.Value(attribute.Key("outcome"))
					assert.Equal("remote_error", outcome.AsString())
					found = true
				}
			}
		}
	}
	assert.True(found)
}
