// Package media contains the media session domain module
package media

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	telegramDelivery "github.com/yourusername/telegram-video-bot/internal/domain/media/delivery/telegram"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/deps"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/repository/memory"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/usecase/business"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/workers"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/storage"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/telegram"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/transcoder"
)

// Module provides media domain components for fx dependency injection
var Module = fx.Module("media",
	// Repository
	fx.Provide(provideSessionRepository),

	// Infrastructure adapters
	fx.Provide(provideFileStore),
	fx.Provide(provideEngine),
	fx.Provide(provideJobQueue),

	// UseCase
	fx.Provide(business.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Workers
	workers.Module,

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

// provideSessionRepository creates the in-memory pending item store
func provideSessionRepository() deps.SessionRepository {
	return memory.NewSessionStore()
}

// provideFileStore exposes the temp store behind the domain interface
func provideFileStore(store *storage.TempStore) deps.FileStore {
	return store
}

// provideEngine exposes the ffmpeg wrapper behind the domain interface
func provideEngine(ffmpeg *transcoder.FFmpeg) deps.Engine {
	return ffmpeg
}

// provideJobQueue exposes the transcode pool behind the domain interface
func provideJobQueue(pool *workers.TranscodePool) deps.JobQueue {
	return pool
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(uc *business.UseCase, bot *telegram.Bot, logger zerolog.Logger) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), logger)
}

// wireAndRegister resolves cyclic dependency and registers routes
func wireAndRegister(
	lc fx.Lifecycle,
	uc *business.UseCase,
	handlers *telegramDelivery.Handlers,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
) {
	// Handlers implements deps.Messenger interface
	// This resolves the cyclic dependency: UseCase -> Messenger <- Handlers -> UseCase
	uc.SetMessenger(handlers)

	router.RegisterRoutes(bot.Raw())

	// The menu needs a network call, so it waits for app start. A failure
	// only degrades the client UI, it must not block startup.
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = router.RegisterCommandMenu(ctx, bot.Raw())
			return nil
		},
	})
}
