package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDisabledProvider(t *testing.T) {
	p, err := NewProvider(Config{OTLPEndpoint: "not a url"})
	require.NoError(t, err)
	require.NotNil(t, p.Meter())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{"disabled", Config{}, ""},
		{"missing endpoint", Config{Enabled: true, SampleRate: 1}, "otlp endpoint is required"},
		{"unparsable endpoint", Config{Enabled: true, OTLPEndpoint: "http://[::1", SampleRate: 1}, "invalid otlp endpoint"},
		{"bare host", Config{Enabled: true, OTLPEndpoint: "localhost:4318", SampleRate: 1}, "http(s) URL"},
		{"negative rate", Config{Enabled: true, OTLPEndpoint: "http://localhost:4318", SampleRate: -0.1}, "sample rate"},
		{"rate above one", Config{Enabled: true, OTLPEndpoint: "http://localhost:4318", SampleRate: 1.5}, "sample rate"},
		{"valid", Config{Enabled: true, OTLPEndpoint: "https://collector:4318", SampleRate: 0.5}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.errMsg)
		})
	}

	_, err := NewProvider(Config{Enabled: true})
	require.ErrorContains(t, err, "invalid telemetry config")
}

func TestEnabledProvider(t *testing.T) {
	prevTracer := otel.GetTracerProvider()
	prevMeter := otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTracer)
		otel.SetMeterProvider(prevMeter)
	})

	p, err := NewProvider(Config{
		Enabled:           true,
		OTLPEndpoint:      "http://127.0.0.1:4318",
		SampleRate:        1,
		Environment:       "test",
		ChainID:           "nativeswap-test",
		PrometheusEnabled: true,
	})
	require.NoError(t, err)
	require.NotNil(t, p.tracerProvider)
	require.NotNil(t, p.meterProvider)
	require.Same(t, p.tracerProvider, otel.GetTracerProvider())

	counter, err := p.Meter().Int64Counter("nswap_test_ops")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestOperationSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder)))

	_, committed := StartOperation(context.Background(), "amm", "swap")
	FinishOperation(committed, 7, nil)
	committed.End()

	_, rejected := StartOperation(context.Background(), "emergency", "execute")
	FinishOperation(rejected, 0, errors.New("boom"))
	rejected.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	require.Equal(t, "amm.swap", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Contains(t, spans[0].Attributes(), AttrModule.String("amm"))
	require.Contains(t, spans[0].Attributes(), AttrOperation.String("swap"))
	require.Contains(t, spans[0].Attributes(), AttrStoreVersion.Int64(7))

	require.Equal(t, "emergency.execute", spans[1].Name())
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Equal(t, "boom", spans[1].Status().Description)
	require.Len(t, spans[1].Events(), 1)
	require.NotContains(t, spans[1].Attributes(), AttrStoreVersion.Int64(0))
}
