// Package telegram contains Telegram delivery layer
package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-video-bot/internal/domain/media/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all command, media and callback handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, r.handlers.HandleStart)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypeExact, r.handlers.HandleHelp)

	bot.RegisterHandlerMatchFunc(MatchMedia, r.handlers.HandleMedia)

	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.DecisionCallbackPrefix, tgbot.MatchTypePrefix, r.handlers.HandleDecisionCallback)

	r.logger.Info().Msg("All Telegram handlers registered successfully")
}

// RegisterCommandMenu publishes the bot command menu to Telegram
func (r *Router) RegisterCommandMenu(ctx context.Context, bot *tgbot.Bot) error {
	commands := make([]models.BotCommand, 0, len(consts.AllCommands))
	for _, cmd := range consts.AllCommands {
		commands = append(commands, models.BotCommand{
			Command:     cmd.Name,
			Description: cmd.Description,
		})
	}

	_, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{Commands: commands})
	if err != nil {
		r.logger.Warn().Err(err).Msg("Failed to publish command menu")
		return err
	}

	r.logger.Info().Int("commands", len(commands)).Msg("Command menu published")
	return nil
}
