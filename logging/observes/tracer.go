package observes

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerOption configures the OTLP gRPC trace exporter.
type TracerOption struct {
	URL                string
	Name               string
	Version            string
	Environment        string
	SamplingRate       float64
	MaxAttributes      int
	BatchTimeout       time.Duration
	ExportTimeout      time.Duration
	MaxExportBatchSize int
}

// NewTracer installs a global tracer provider that batches spans to the
// configured OTLP gRPC endpoint.
func NewTracer(opt *TracerOption) error {
	if opt == nil {
		return fmt.Errorf("tracer config is nil")
	}
	ctx := context.Background()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(opt.URL),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := serviceResource(ctx, opt)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opt.SamplingRate))),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithMaxExportBatchSize(opt.MaxExportBatchSize),
			sdktrace.WithBatchTimeout(opt.BatchTimeout),
			sdktrace.WithExportTimeout(opt.ExportTimeout),
		),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

func serviceResource(ctx context.Context, opt *TracerOption) (*resource.Resource, error) {
	return resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(opt.Name),
		attribute.String("version", opt.Version),
		attribute.String("environment", opt.Environment),
	))
}

// Layer identifies which application layer a traced call belongs to.
type Layer int

const (
	LayerUnknown Layer = iota
	LayerCommand
	LayerCursor
	LayerAdapter
)

func (l Layer) String() string {
	return [...]string{"Unknown", "Command", "Cursor", "Adapter"}[l]
}

// MethodCall records a single traced call.
type MethodCall struct {
	Layer Layer
	Name  string
}

// TracingContext groups a span with the method calls recorded under it.
// Calls accumulate until End, which folds them into per-layer span
// attributes.
type TracingContext struct {
	ctx      context.Context
	span     trace.Span
	calls    []MethodCall
	maxAttrs int
}

// NewTracingContext starts a span named name. maxAttrs caps how many
// per-layer attributes End will attach.
func NewTracingContext(ctx context.Context, name string, maxAttrs int) *TracingContext {
	ctx, span := otel.Tracer("").Start(ctx, name)
	return &TracingContext{
		ctx:      ctx,
		span:     span,
		maxAttrs: maxAttrs,
	}
}

// AddMethodCall records a call made under this span.
func (tc *TracingContext) AddMethodCall(layer Layer, name string) {
	tc.calls = append(tc.calls, MethodCall{Layer: layer, Name: name})
}

// SetAttributes sets attributes on the underlying span.
func (tc *TracingContext) SetAttributes(attributes ...attribute.KeyValue) {
	tc.span.SetAttributes(attributes...)
}

// SetStatus sets the span status.
func (tc *TracingContext) SetStatus(code codes.Code, description string) {
	tc.span.SetStatus(code, description)
}

// Context returns the context carrying the span.
func (tc *TracingContext) Context() context.Context {
	return tc.ctx
}

// End folds the recorded calls into span attributes and ends the span.
func (tc *TracingContext) End() {
	tc.flushCallAttributes()
	tc.span.End()
}

func (tc *TracingContext) flushCallAttributes() {
	byLayer := make(map[Layer][]string)
	for _, call := range tc.calls {
		byLayer[call.Layer] = append(byLayer[call.Layer], call.Name)
	}

	attrs := make([]attribute.KeyValue, 0, len(byLayer))
	for layer, names := range byLayer {
		if len(attrs) == tc.maxAttrs {
			break
		}
		attrs = append(attrs, attribute.StringSlice(layer.String()+"_calls", names))
	}
	tc.span.SetAttributes(attrs...)
}
