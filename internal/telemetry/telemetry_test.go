package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupTracingWithoutEndpoint(t *testing.T) {
	tracing, err := SetupTracing(context.Background(), "  ")
	require.NoError(t, err)

	assert.False(t, tracing.Enabled())
	assert.Nil(t, tracing.Provider)
	assert.NoError(t, tracing.Shutdown())
}

func TestSetupTracingInstallsGlobalProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	tracing, err := SetupTracing(context.Background(), "http://127.0.0.1:4318")
	require.NoError(t, err)
	require.True(t, tracing.Enabled())

	assert.Same(t, tracing.sdk, otel.GetTracerProvider())
	assert.NoError(t, tracing.Shutdown())
}
