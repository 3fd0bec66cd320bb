package tracer

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Namespace groups every campus process under one service.namespace so the
// collector can tell the API apart from neighbouring deployments.
const Namespace = "campus"

// InitTracer installs the global propagator and tracer provider. Without an
// endpoint, or when the exporter cannot be built, spans are still recorded
// with the campus resource but never exported.
func InitTracer(ctx context.Context, serviceName, otlpEndpoint string, appLogger *logger.Logger) *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	res, err := newResource(serviceName)
	if err != nil {
		appLogger.Error("Failed to build tracing resource, using the SDK default", zap.Error(err))
		res = resource.Default()
	}

	var tp *sdktrace.TracerProvider
	if otlpEndpoint == "" {
		appLogger.Info("OpenTelemetry export is disabled: OTEL_EXPORTER_OTLP_ENDPOINT is not set")
		tp = newProvider(res)
	} else {
		tp, err = newOTLPProvider(ctx, res, otlpEndpoint)
		if err != nil {
			appLogger.Error("Failed to start OTLP export, spans stay local", zap.Error(err), zap.String("endpoint", otlpEndpoint))
			tp = newProvider(res)
		} else {
			appLogger.Info("OpenTelemetry export enabled",
				zap.String("service_name", serviceName),
				zap.String("otlp_endpoint", otlpEndpoint),
			)
		}
	}

	otel.SetTracerProvider(tp)
	return tp
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceNamespaceKey.String(Namespace),
		),
	)
}

// Child spans follow the caller's sampling decision so a trace that starts
// at a gateway is never cut in half by the API.
func newProvider(res *resource.Resource, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = append(opts,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	return sdktrace.NewTracerProvider(opts...)
}

func newOTLPProvider(ctx context.Context, res *resource.Resource, endpoint string) (*sdktrace.TracerProvider, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial otlp collector %s: %w", endpoint, err)
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}
	return newProvider(res, sdktrace.WithBatcher(exporter)), nil
}
