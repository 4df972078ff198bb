// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-video-bot/internal/domain/media/consts"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/dto"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/entities"
	mediaerrors "github.com/yourusername/telegram-video-bot/internal/domain/media/errors"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/usecase/business"
)

// Constants for Telegram API
const (
	RequestTimeout  = 30 * time.Second
	DownloadTimeout = 120 * time.Second
	UploadTimeout   = 300 * time.Second
)

// Button labels on the choice prompt
const (
	buttonOriginal = "📤 Send original"
	buttonCompress = "🗜 Compress and send"
)

// Handlers contains Telegram update handlers
// Implements deps.Messenger interface
type Handlers struct {
	uc         *business.UseCase
	bot        *tgbot.Bot
	logger     zerolog.Logger
	httpClient *http.Client
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *business.UseCase, bot *tgbot.Bot, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		bot:    bot,
		logger: logger,
		httpClient: &http.Client{
			Timeout: DownloadTimeout,
		},
	}
}

// SendText implements deps.Messenger interface
func (h *Handlers) SendText(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		h.logger.Warn().Int64("chat_id", chatID).Msg("Attempt to send empty message")
		return fmt.Errorf("message text cannot be empty")
	}

	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return h.handleSendError(chatID, err)
	}

	return nil
}

// SendChoicePrompt implements deps.Messenger interface. It attaches the
// original/compress inline keyboard and returns the prompt's message ID
// so later status edits can target it.
func (h *Handlers) SendChoicePrompt(ctx context.Context, chatID int64, text string) (int, error) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	msg, err := h.bot.SendMessage(msgCtx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{
					{Text: buttonOriginal, CallbackData: consts.DecisionCallbackOriginal},
					{Text: buttonCompress, CallbackData: consts.DecisionCallbackCompress},
				},
			},
		},
	})
	if err != nil {
		return 0, h.handleSendError(chatID, err)
	}

	return msg.ID, nil
}

// SendDocumentFile implements deps.Messenger interface
func (h *Handlers) SendDocumentFile(ctx context.Context, chatID int64, path, filename string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file for upload: %w", err)
	}
	defer file.Close()

	msgCtx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err = h.bot.SendDocument(msgCtx, &tgbot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filename, Data: file},
	})
	if err != nil {
		return h.handleSendError(chatID, err)
	}

	h.logger.Info().Int64("chat_id", chatID).Str("filename", filename).Msg("Document uploaded to Telegram")
	return nil
}

// EditStatus implements deps.Messenger interface
func (h *Handlers) EditStatus(ctx context.Context, chatID int64, messageID int, text string) error {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := h.bot.EditMessageText(msgCtx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	return err
}

// DownloadToFile implements deps.Messenger interface. It resolves the
// file_id through getFile and streams the download straight into
// destPath, never buffering the whole file in memory.
func (h *Handlers) DownloadToFile(ctx context.Context, fileID, destPath string) error {
	dlCtx, cancel := context.WithTimeout(ctx, DownloadTimeout)
	defer cancel()

	file, err := h.bot.GetFile(dlCtx, &tgbot.GetFileParams{FileID: fileID})
	if err != nil {
		return fmt.Errorf("resolve file path: %w", err)
	}

	link := h.bot.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(dlCtx, http.MethodGet, link, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open destination: %w", err)
	}

	if _, err := io.Copy(dest, resp.Body); err != nil {
		dest.Close()
		return fmt.Errorf("write download: %w", err)
	}

	return dest.Close()
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.logCommand(userID, "/start", "processing")

	req := &dto.StartCommandRequest{
		UserID:   userID,
		Username: update.Message.From.Username,
	}

	resp, err := h.uc.HandleStart(ctx, req)
	if err != nil {
		h.logError(userID, "/start", err)
		h.sendResponse(ctx, chatID, "❌ Something went wrong handling /start")
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(userID, "/start", "success")
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.logCommand(userID, "/help", "processing")

	resp, err := h.uc.HandleHelp(ctx)
	if err != nil {
		h.logError(userID, "/help", err)
		h.sendResponse(ctx, chatID, "❌ Something went wrong handling /help")
		return
	}

	h.sendResponse(ctx, chatID, resp.Message)
	h.logCommand(userID, "/help", "success")
}

// HandleMedia handles incoming video and animation uploads
func (h *Handlers) HandleMedia(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	fileID, fileName, kind, ok := extractMedia(update.Message)
	if !ok {
		h.logError(userID, "upload", mediaerrors.ErrUnsupportedMedia)
		return
	}

	h.logger.Info().
		Int64("user_id", userID).
		Str("kind", string(kind)).
		Msg("Received media upload")

	req := &dto.UploadRequest{
		UserID:   userID,
		ChatID:   chatID,
		FileID:   fileID,
		FileName: fileName,
		Kind:     kind,
	}

	if err := h.uc.HandleUpload(ctx, req); err != nil {
		h.logError(userID, "upload", err)
	}
}

// HandleDecisionCallback handles original/compress button clicks
func (h *Handlers) HandleDecisionCallback(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	userID := cb.From.ID

	// Stop the client-side spinner regardless of outcome.
	_, _ = bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
	})

	chatID, messageID, ok := callbackMessageRef(cb)
	if !ok {
		h.logger.Warn().Int64("user_id", userID).Msg("Callback without accessible message, ignoring")
		return
	}

	decision, err := parseDecision(cb.Data)
	if err != nil {
		h.logger.Warn().Int64("user_id", userID).Str("data", cb.Data).Msg("Unrecognized callback data")
		return
	}

	req := &dto.DecisionRequest{
		UserID:    userID,
		ChatID:    chatID,
		MessageID: messageID,
		Decision:  decision,
	}

	if err := h.uc.HandleDecision(ctx, req); err != nil {
		h.logError(userID, "decision", err)
	}
}

// MatchMedia reports whether an update carries a supported upload
func MatchMedia(update *models.Update) bool {
	if update.Message == nil {
		return false
	}
	return update.Message.Video != nil || update.Message.Animation != nil
}

// extractMedia pulls the file reference out of a message. Animations win
// over videos when both are set because Telegram attaches a fallback
// Video to GIF messages.
func extractMedia(msg *models.Message) (fileID, fileName string, kind entities.MediaKind, ok bool) {
	switch {
	case msg.Animation != nil:
		return msg.Animation.FileID, msg.Animation.FileName, entities.MediaKindAnimation, true
	case msg.Video != nil:
		return msg.Video.FileID, msg.Video.FileName, entities.MediaKindVideo, true
	default:
		return "", "", "", false
	}
}

// callbackMessageRef resolves the chat and message the callback's
// keyboard is attached to
func callbackMessageRef(cb *models.CallbackQuery) (chatID int64, messageID int, ok bool) {
	if cb.Message.Message == nil {
		return 0, 0, false
	}
	return cb.Message.Message.Chat.ID, cb.Message.Message.ID, true
}

// parseDecision maps callback data to a decision
func parseDecision(data string) (entities.Decision, error) {
	if !strings.HasPrefix(data, consts.DecisionCallbackPrefix) {
		return "", fmt.Errorf("callback data %q lacks decision prefix", data)
	}

	switch strings.TrimPrefix(data, consts.DecisionCallbackPrefix) {
	case string(entities.DecisionOriginal):
		return entities.DecisionOriginal, nil
	case string(entities.DecisionCompress):
		return entities.DecisionCompress, nil
	default:
		return "", fmt.Errorf("unknown decision token %q", data)
	}
}

func (h *Handlers) sendResponse(ctx context.Context, chatID int64, text string) {
	if err := h.SendText(ctx, chatID, text); err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram response")
	}
}

func (h *Handlers) handleSendError(chatID int64, err error) error {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "Forbidden"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("User blocked the bot or chat not found")
		return fmt.Errorf("user blocked the bot or chat not found")

	case strings.Contains(errorMsg, "Too Many Requests"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("Rate limit exceeded")
		return fmt.Errorf("rate limit exceeded, please try again later")

	case strings.Contains(errorMsg, "Request Entity Too Large"):
		h.logger.Warn().Int64("chat_id", chatID).Msg("File exceeds Telegram upload limit")
		return fmt.Errorf("file is too large for Telegram")

	default:
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Telegram send failed")
		return fmt.Errorf("failed to send message: %w", err)
	}
}

// logCommand logs command processing status
func (h *Handlers) logCommand(userID int64, command, status string) {
	h.logger.Info().
		Int64("user_id", userID).
		Str("command", command).
		Str("status", status).
		Msg("Command processed")
}

// logError logs command processing error
func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().
		Int64("user_id", userID).
		Str("command", command).
		Err(err).
		Msg("Command processing failed")
}
