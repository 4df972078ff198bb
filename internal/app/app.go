// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/yourusername/telegram-video-bot/config"
	"github.com/yourusername/telegram-video-bot/internal/domain"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, telegram bot, temp storage, ffmpeg, metrics)
		infrastructure.Module,

		// Domain (media session business logic)
		domain.Module,
	)
}
