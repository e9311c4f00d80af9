package telemetry

import (
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// instanceID names this process. Traces and metrics share it so a grid replica's spans
// and counters can be matched.
var instanceID = sync.OnceValue(uuid.NewString)

func serviceResource(serviceName string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceInstanceIDKey.String(instanceID()),
	)
}
