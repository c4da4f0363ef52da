// Package telemetry provides OpenTelemetry tracing and metrics for the
// engine. Each committed or rejected engine call becomes one span; metrics
// are bridged to the Prometheus registry served by the daemon.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/nativeswap/nativeswap/app"

// Span attribute keys set on engine operations.
const (
	AttrModule       = attribute.Key("nswap.module")
	AttrOperation    = attribute.Key("nswap.operation")
	AttrStoreVersion = attribute.Key("nswap.store_version")
	AttrChainID      = attribute.Key("nswap.chain_id")
)

// Config holds the configuration for telemetry
type Config struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp-endpoint"`
	SampleRate   float64 `mapstructure:"sample-rate"`
	Environment  string  `mapstructure:"environment"`
	ChainID      string  `mapstructure:"-"`

	PrometheusEnabled bool `mapstructure:"prometheus-enabled"`
}

// Validate checks an enabled config. Disabled configs are always valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.OTLPEndpoint == "" {
		return fmt.Errorf("otlp endpoint is required")
	}
	u, err := url.Parse(c.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("invalid otlp endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("otlp endpoint %q must be an http(s) URL", c.OTLPEndpoint)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1")
	}
	return nil
}

// Provider owns the SDK tracer and meter providers installed for the
// daemon's lifetime. The zero-config provider installs nothing and hands
// out the global no-op meter.
type Provider struct {
	tracerProvider *tracesdk.TracerProvider
	meterProvider  *metricsdk.MeterProvider
}

// NewProvider installs span export over OTLP/HTTP and, when enabled, the
// Prometheus metric bridge as the global otel providers.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(
			semconv.ServiceName("nswapd"),
			semconv.DeploymentEnvironment(cfg.Environment),
			AttrChainID.String(cfg.ChainID),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}

	exporter, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	p := &Provider{
		tracerProvider: tracesdk.NewTracerProvider(
			tracesdk.WithBatcher(exporter),
			tracesdk.WithResource(res),
			tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(cfg.SampleRate))),
		),
	}
	otel.SetTracerProvider(p.tracerProvider)

	if cfg.PrometheusEnabled {
		reader, err := prometheus.New()
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to create Prometheus exporter: %w", err), p.Shutdown(context.Background()))
		}
		p.meterProvider = metricsdk.NewMeterProvider(metricsdk.WithResource(res), metricsdk.WithReader(reader))
		otel.SetMeterProvider(p.meterProvider)
	}
	return p, nil
}

// Meter returns the meter engine instruments are created on.
func (p *Provider) Meter() metric.Meter {
	if p.meterProvider == nil {
		return otel.Meter(instrumentation)
	}
	return p.meterProvider.Meter(instrumentation)
}

// Shutdown flushes pending spans and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}

// StartOperation opens the span for one engine call, named module.op.
func StartOperation(ctx context.Context, module, op string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, module+"."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(AttrModule.String(module), AttrOperation.String(op)),
	)
}

// FinishOperation records the outcome of an engine call on span: the error
// for a rejected call, the committed store version otherwise. It does not
// end the span.
func FinishOperation(span trace.Span, version int64, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(AttrStoreVersion.Int64(version))
	span.SetStatus(codes.Ok, "")
}
