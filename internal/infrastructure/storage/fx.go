// Package storage contains the temporary file store
package storage

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/yourusername/telegram-video-bot/config"
)

// Module provides the temp file store for fx dependency injection
var Module = fx.Module("storage",
	fx.Provide(provideTempStore),
)

// provideTempStore creates the temp store from config
func provideTempStore(cfg *config.StorageConfig, logger zerolog.Logger) (*TempStore, error) {
	return NewTempStore(cfg.TempDir, logger.With().Str("component", "temp-store").Logger())
}
