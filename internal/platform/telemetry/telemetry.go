// Package telemetry sets up OpenTelemetry tracing and metrics for the
// browse service, exporting to stdout in development and to an OTLP/HTTP
// collector elsewhere.
//
//	tp, err := telemetry.InitTracer(ctx, "marketplace-browse", telemetry.ExporterOTLP, "http://otel-collector:4318")
//	mp, err := telemetry.InitMeter(ctx, "marketplace-browse", telemetry.ExporterOTLP, "http://otel-collector:4318")
//	metrics, err := telemetry.NewMetrics(mp, "marketplace-browse")
//	metrics.BrowseFetchTotal.Add(ctx, 1, metric.WithAttributes(telemetry.AttrResult.String("stale")))
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// instrumentationScope names the meter all service instruments live under.
const instrumentationScope = "github.com/badhon18478/Marketplace-sub000"

// Attribute keys shared by spans and metrics.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrCategory    = attribute.Key("job.category")
)

// Metrics is the service's instrument set. A nil *Metrics means telemetry
// is off; callers check before recording.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter

	// BrowseFetchTotal counts listing fetches by outcome
	// (result=success|error|stale).
	BrowseFetchTotal metric.Int64Counter
	// BrowseFetchDuration records the time from issue to settle of a
	// listing fetch, including discarded ones.
	BrowseFetchDuration metric.Float64Histogram
}

// InitTracer installs a global TracerProvider exporting to exporter
// (ExporterStdout or ExporterOTLP at endpoint) and the W3C trace-context
// and baggage propagators. The caller shuts the provider down.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, err
	}
	exp, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res), sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp, nil
}

// InitMeter installs a global MeterProvider with a periodic reader over the
// chosen exporter. The caller shuts the provider down.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, err
	}
	exp, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)))
	otel.SetMeterProvider(mp)
	return mp, nil
}

// NewMetrics registers every instrument on a meter scoped to the module path
// and tagged with serviceName.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	b := instrumentBuilder{meter: mp.Meter(instrumentationScope,
		metric.WithInstrumentationAttributes(semconv.ServiceName(serviceName)))}

	m := &Metrics{
		ServerRequestDuration: b.seconds("http.server.request.duration", "Duration of incoming HTTP requests"),
		ServerRequestTotal:    b.count("http.server.request.total", "{request}", "Total number of incoming HTTP requests"),
		ClientRequestDuration: b.seconds("http.client.request.duration", "Duration of outgoing HTTP requests"),
		ClientRequestTotal:    b.count("http.client.request.total", "{request}", "Total number of outgoing HTTP requests"),
		BrowseFetchTotal:      b.count("browse.fetch.total", "{fetch}", "Total number of job listing fetches by outcome"),
		BrowseFetchDuration:   b.seconds("browse.fetch.duration", "Duration of job listing fetches"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// instrumentBuilder keeps the first creation error so NewMetrics can declare
// all instruments in one literal.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) seconds(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	b.keep(name, err)
	return h
}

func (b *instrumentBuilder) count(name, unit, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.keep(name, err)
	return c
}

func (b *instrumentBuilder) keep(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("creating %s: %w", name, err)
	}
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	return res, nil
}

var errEmptyEndpoint = errors.New("otlp exporter requires an endpoint")

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		host, insecure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	return nil, fmt.Errorf("unsupported exporter %q", exporter)
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdoutmetric.New()
	case ExporterOTLP:
		host, insecure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	}
	return nil, fmt.Errorf("unsupported exporter %q", exporter)
}

// otlpTarget splits a collector URL such as "http://otel-collector:4318"
// into its host:port and whether plain HTTP is used. A bare host:port is
// accepted and treated as plain HTTP.
func otlpTarget(endpoint string) (host string, insecure bool, err error) {
	if endpoint == "" {
		return "", false, errEmptyEndpoint
	}
	u, perr := url.Parse(endpoint)
	if perr != nil || u.Host == "" {
		return endpoint, true, nil
	}
	return u.Host, u.Scheme != "https", nil
}
