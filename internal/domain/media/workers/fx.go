// Package workers contains background workers for the media domain
package workers

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/yourusername/telegram-video-bot/config"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("media-workers",
	fx.Provide(provideTranscodePool),
	fx.Invoke(registerPoolLifecycle),
)

// provideTranscodePool creates the pool from config
func provideTranscodePool(cfg *config.TranscodeConfig, logger zerolog.Logger) *TranscodePool {
	return NewTranscodePool(cfg, logger.With().Str("component", "transcode-pool").Logger())
}

// registerPoolLifecycle registers pool lifecycle hooks
func registerPoolLifecycle(lc fx.Lifecycle, pool *TranscodePool) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			pool.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return pool.Stop()
		},
	})
}
