package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"

	"github.com/zerorisk/claimledger/internal/config"
	"github.com/zerorisk/claimledger/internal/observability/metrics"
	"github.com/zerorisk/claimledger/internal/observability/tracing"
)

const serviceName = "claimledger"

var Module = fx.Module("observability",
	fx.Provide(newMetricsConfig),
	fx.Provide(newRegistry),
	fx.Provide(newHTTPMetrics),
	fx.Provide(newRecoveryMetrics),
	fx.Provide(newTracingConfig),
	fx.Provide(tracing.NewProvider),
	// Force provider construction so the exporter starts with the app.
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
	}
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func newHTTPMetrics(registry *prometheus.Registry, cfg metrics.Config) *metrics.HTTPMetrics {
	return metrics.NewHTTPMetrics(registry, cfg)
}

func newRecoveryMetrics(registry *prometheus.Registry, cfg metrics.Config) *metrics.RecoveryMetrics {
	return metrics.NewRecoveryMetrics(registry, cfg)
}

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.OTLPEndpoint != "",
		ServiceName:      serviceName,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.OTLPEndpoint,
		ExporterProtocol: cfg.OTLPProtocol,
		SamplingRatio:    1,
	}
}
