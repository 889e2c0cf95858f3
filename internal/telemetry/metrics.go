package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/zjrosen/breathe/internal/breathing"
	"github.com/zjrosen/breathe/internal/config"
)

// Metric names.
const (
	MetricCyclesCompleted = "breathe.cycles.completed"
	MetricPhasesEntered   = "breathe.phases.entered"
	MetricSessionsStarted = "breathe.sessions.started"
)

// Metrics holds the session counters.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	cycles   metric.Int64Counter
	phases   metric.Int64Counter
	sessions metric.Int64Counter
}

// NewMetrics builds counters from cfg. Disabled metrics use a no-op meter.
func NewMetrics(ctx context.Context, cfg config.MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return newMetrics(nil, noop.NewMeterProvider().Meter("noop"))
	}

	var opts []sdkmetric.Option
	switch cfg.Exporter {
	case "otlp":
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exp, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating OTLP metric exporter: %w", err)
		}
		interval := time.Duration(cfg.IntervalSeconds) * time.Second
		if interval <= 0 {
			interval = 30 * time.Second
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))))
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported metrics exporter: %s", cfg.Exporter)
	}

	m, err := NewMetricsFrom(opts...)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(m.provider)
	return m, nil
}

// NewMetricsFrom builds counters on an SDK meter provider with opts.
func NewMetricsFrom(opts ...sdkmetric.Option) (*Metrics, error) {
	res := resource.NewSchemaless(attribute.String("service.name", ServiceName))
	provider := sdkmetric.NewMeterProvider(append([]sdkmetric.Option{sdkmetric.WithResource(res)}, opts...)...)
	return newMetrics(provider, provider.Meter(ServiceName))
}

func newMetrics(provider *sdkmetric.MeterProvider, meter metric.Meter) (*Metrics, error) {
	cycles, err := meter.Int64Counter(MetricCyclesCompleted,
		metric.WithDescription("Completed breathing squares"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cycles counter: %w", err)
	}

	phases, err := meter.Int64Counter(MetricPhasesEntered,
		metric.WithDescription("Breathing phases entered"),
		metric.WithUnit("{phase}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating phases counter: %w", err)
	}

	sessions, err := meter.Int64Counter(MetricSessionsStarted,
		metric.WithDescription("Sessions started from idle"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	return &Metrics{
		provider: provider,
		cycles:   cycles,
		phases:   phases,
		sessions: sessions,
	}, nil
}

func (m *Metrics) SessionStarted(ctx context.Context, duration int) {
	m.sessions.Add(ctx, 1, metric.WithAttributes(attribute.Int("cycle.duration_seconds", duration)))
}

func (m *Metrics) PhaseEntered(ctx context.Context, phase breathing.Phase) {
	m.phases.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", phase.String())))
}

func (m *Metrics) CycleCompleted(ctx context.Context, duration int) {
	m.cycles.Add(ctx, 1, metric.WithAttributes(attribute.Int("cycle.duration_seconds", duration)))
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
