package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const defaultCollector = "http://localhost:14268/api/traces"

// InitTracer installs the global provider for digest runs. Spans are batched,
// so the caller must Shutdown the provider before exit or the last run is lost.
func InitTracer(serviceName, environment, collector string) (*tracesdk.TracerProvider, error) {
	const op = "tracing.InitTracer"

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(NormalizeJaegerCollector(collector)),
	))
	if err != nil {
		return nil, fmt.Errorf("%s: create jaeger exporter: %w", op, err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(digestResource(serviceName, environment)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

func digestResource(serviceName, environment string) *resource.Resource {
	env := strings.TrimSpace(environment)
	if env == "" {
		env = "local"
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.DeploymentEnvironment(env),
	)
}

// NormalizeJaegerCollector accepts a bare host, host:port or full URL as
// given in JAEGER and returns the collector's traces endpoint.
func NormalizeJaegerCollector(value string) string {
	endpoint := strings.TrimSpace(value)
	if endpoint == "" {
		return defaultCollector
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	if strings.HasSuffix(endpoint, "/api/traces") {
		return endpoint
	}

	return endpoint + "/api/traces"
}
