// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/yourusername/telegram-video-bot/internal/infrastructure/logger"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/metrics"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/storage"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/telegram"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/transcoder"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	telegram.Module,
	storage.Module,
	transcoder.Module,
	metrics.Module,
)
