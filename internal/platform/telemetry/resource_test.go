package telemetry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

func Test_serviceResource(t *testing.T) {
	first := serviceResource("productgrid")
	second := serviceResource("productgrid")

	name, ok := first.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "productgrid", name.AsString())

	id, ok := first.Set().Value(semconv.ServiceInstanceIDKey)
	require.True(t, ok)
	_, err := uuid.Parse(id.AsString())
	assert.NoError(t, err)

	again, _ := second.Set().Value(semconv.ServiceInstanceIDKey)
	assert.Equal(t, id.AsString(), again.AsString())
}
