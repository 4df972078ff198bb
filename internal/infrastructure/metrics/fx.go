// Package metrics contains Prometheus metrics infrastructure
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/yourusername/telegram-video-bot/config"
)

// Module provides metrics for fx dependency injection
var Module = fx.Module("metrics",
	fx.Provide(provideRegistry),
	fx.Provide(NewMetrics),
	fx.Invoke(registerServerLifecycle),
)

// provideRegistry creates the Prometheus registry with process collectors
func provideRegistry() (*prometheus.Registry, prometheus.Registerer) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg, reg
}

// registerServerLifecycle starts the metrics server unless disabled
func registerServerLifecycle(lc fx.Lifecycle, cfg *config.MetricsConfig, reg *prometheus.Registry, logger zerolog.Logger) {
	if cfg.Port == "" {
		logger.Info().Msg("Metrics server disabled")
		return
	}

	server := NewServer(cfg.Port, reg, logger.With().Str("component", "metrics").Logger())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			server.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
}
