// Package business contains business logic for the media domain
package business

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-video-bot/internal/domain/media/deps"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/dto"
	"github.com/yourusername/telegram-video-bot/internal/domain/media/entities"
	mediaerrors "github.com/yourusername/telegram-video-bot/internal/domain/media/errors"
	"github.com/yourusername/telegram-video-bot/internal/infrastructure/metrics"
)

// User-visible replies
const (
	msgChoicePrompt      = "Choose what to do with the file:"
	msgNoStoredFile      = "No media file currently stored. Send a new video or GIF."
	msgIngestFailed      = "❌ Could not download your file, please try sending it again."
	msgSendingOriginal   = "Sending the original file..."
	msgOriginalSent      = "✅ Original file sent."
	msgCompressing       = "Compressing the file, please wait..."
	msgCompressedSent    = "✅ Compressed file sent."
	msgCompressionFailed = "❌ Compression failed: %s"
	msgQueueBusy         = "❌ Too many files are being compressed right now, please try again in a moment."
)

// Default display names when the upload carries none
const (
	defaultVideoName     = "video.mp4"
	defaultAnimationName = "animation.gif"
)

// compressedExt is the container every compressed video or animation is
// muxed into
const compressedExt = ".mp4"

// UseCase orchestrates the media session state machine: ingest, choice
// prompt, decision handling, delivery and cleanup. The one invariant the
// whole type exists to uphold is that every terminal branch releases a
// session's backing file exactly once.
type UseCase struct {
	sessions  deps.SessionRepository
	files     deps.FileStore
	engine    deps.Engine
	queue     deps.JobQueue
	messenger deps.Messenger
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewUseCase creates a new UseCase instance
// Note: messenger is not passed here to break cyclic dependency
// Use SetMessenger after creating the Telegram handlers
func NewUseCase(
	sessions deps.SessionRepository,
	files deps.FileStore,
	engine deps.Engine,
	queue deps.JobQueue,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		sessions: sessions,
		files:    files,
		engine:   engine,
		queue:    queue,
		metrics:  m,
		logger:   logger,
	}
}

// SetMessenger sets the Messenger after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetMessenger(m deps.Messenger) {
	uc.messenger = m
}

// HandleStart handles /start command
func (uc *UseCase) HandleStart(ctx context.Context, req *dto.StartCommandRequest) (*dto.CommandResponse, error) {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("username", req.Username).
		Msg("User started bot")

	message := `👋 <b>Welcome!</b>

Send me a video or GIF and I will offer two options: get the original file back unchanged, or a compressed, smaller version.

<b>Commands:</b>
/help - show help`

	return &dto.CommandResponse{Message: message}, nil
}

// HandleHelp handles /help command
func (uc *UseCase) HandleHelp(ctx context.Context) (*dto.CommandResponse, error) {
	message := `📚 <b>Help:</b>

Send a video or GIF. I will store it and show two buttons:

<b>Send original</b> - returns the file exactly as uploaded
<b>Compress and send</b> - re-encodes it down to at most 1280x720 and sends the smaller file

Uploading a new file replaces the previous pending one.

<b>Commands:</b>
/start - start the bot
/help - show this help`

	return &dto.CommandResponse{Message: message}, nil
}

// HandleUpload ingests a supported upload: downloads it to a temp file,
// records it as the user's sole pending item (destroying any superseded
// item's file) and sends the choice prompt.
func (uc *UseCase) HandleUpload(ctx context.Context, req *dto.UploadRequest) error {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("kind", string(req.Kind)).
		Str("file_name", req.FileName).
		Msg("Processing media upload")

	displayName := req.FileName
	if displayName == "" {
		displayName = defaultDisplayName(req.Kind)
	}

	path, err := uc.files.Acquire(filepath.Ext(displayName))
	if err != nil {
		uc.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to acquire temp file")
		uc.reply(ctx, req.ChatID, msgIngestFailed)
		return fmt.Errorf("acquire temp file: %w", err)
	}

	if err := uc.messenger.DownloadToFile(ctx, req.FileID, path); err != nil {
		uc.files.Release(path)
		uc.metrics.DownloadErrors.Inc()
		uc.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to download media")
		uc.reply(ctx, req.ChatID, msgIngestFailed)
		return fmt.Errorf("%w: %s", mediaerrors.ErrDownloadFailed, err)
	}

	if info, statErr := os.Stat(path); statErr != nil || info.Size() == 0 {
		uc.files.Release(path)
		uc.metrics.DownloadErrors.Inc()
		uc.logger.Error().Int64("user_id", req.UserID).Msg("Downloaded file is missing or empty")
		uc.reply(ctx, req.ChatID, msgIngestFailed)
		return mediaerrors.ErrDownloadFailed
	}

	item := &entities.MediaItem{
		SourcePath:  path,
		Kind:        req.Kind,
		DisplayName: displayName,
		ChatID:      req.ChatID,
		CreatedAt:   time.Now(),
	}

	// Only the most recent upload is ever deliverable; a superseded
	// item's backing file must never be referenced again.
	if previous := uc.sessions.Put(req.UserID, item); previous != nil {
		uc.files.Release(previous.SourcePath)
		uc.metrics.SessionsSuperseded.Inc()
		uc.logger.Info().Int64("user_id", req.UserID).Str("path", previous.SourcePath).Msg("Superseded pending item")
	}

	if _, err := uc.messenger.SendChoicePrompt(ctx, req.ChatID, msgChoicePrompt); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to send choice prompt")
		// The session stays pending; the user can still upload again,
		// which supersedes and cleans up this item.
		return fmt.Errorf("send choice prompt: %w", err)
	}

	uc.metrics.SessionsStarted.Inc()
	return nil
}

// HandleDecision consumes the user's button click. The item is taken
// atomically so a given pending item can be acted on at most once;
// repeated or stale clicks get the "no file stored" reply.
func (uc *UseCase) HandleDecision(ctx context.Context, req *dto.DecisionRequest) error {
	uc.logger.Info().
		Int64("user_id", req.UserID).
		Str("decision", string(req.Decision)).
		Msg("Processing decision")

	item, ok := uc.sessions.Take(req.UserID)
	if !ok {
		uc.metrics.StaleDecisions.Inc()
		uc.editStatus(ctx, req.ChatID, req.MessageID, msgNoStoredFile)
		return mediaerrors.ErrMissingSession
	}

	if _, err := os.Stat(item.SourcePath); err != nil {
		// The session existed but its backing file is gone; treat it the
		// same as an absent session. Nothing to delete.
		uc.metrics.StaleDecisions.Inc()
		uc.logger.Warn().Int64("user_id", req.UserID).Str("path", item.SourcePath).Msg("Stored file missing on disk")
		uc.editStatus(ctx, req.ChatID, req.MessageID, msgNoStoredFile)
		return mediaerrors.ErrMissingSession
	}

	switch req.Decision {
	case entities.DecisionOriginal:
		return uc.deliverOriginal(ctx, req, item)
	case entities.DecisionCompress:
		return uc.enqueueCompress(ctx, req, item)
	default:
		// Unknown token: restore nothing, release the file, report stale.
		uc.files.Release(item.SourcePath)
		uc.editStatus(ctx, req.ChatID, req.MessageID, msgNoStoredFile)
		return fmt.Errorf("unknown decision %q", req.Decision)
	}
}

// deliverOriginal sends the file back unchanged
func (uc *UseCase) deliverOriginal(ctx context.Context, req *dto.DecisionRequest, item *entities.MediaItem) error {
	defer uc.files.Release(item.SourcePath)

	uc.editStatus(ctx, req.ChatID, req.MessageID, msgSendingOriginal)

	if err := uc.messenger.SendDocumentFile(ctx, req.ChatID, item.SourcePath, item.DisplayName); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to deliver original")
		uc.editStatus(ctx, req.ChatID, req.MessageID, msgNoStoredFile)
		return fmt.Errorf("%w: %s", mediaerrors.ErrDeliveryFailed, err)
	}

	uc.metrics.Deliveries.WithLabelValues("original").Inc()
	uc.editStatus(ctx, req.ChatID, req.MessageID, msgOriginalSent)

	uc.logger.Info().Int64("user_id", req.UserID).Str("file", item.DisplayName).Msg("Original delivered")
	return nil
}

// enqueueCompress hands the blocking transcode to the worker pool so the
// update-handling path stays free for other users
func (uc *UseCase) enqueueCompress(ctx context.Context, req *dto.DecisionRequest, item *entities.MediaItem) error {
	uc.editStatus(ctx, req.ChatID, req.MessageID, msgCompressing)

	userID := req.UserID
	chatID := req.ChatID
	messageID := req.MessageID

	err := uc.queue.Submit(func(jobCtx context.Context) {
		uc.compressAndDeliver(jobCtx, userID, chatID, messageID, item)
	})
	if err != nil {
		uc.files.Release(item.SourcePath)
		uc.logger.Warn().Err(err).Int64("user_id", userID).Msg("Transcode queue rejected job")
		uc.editStatus(ctx, chatID, messageID, msgQueueBusy)
		return err
	}

	return nil
}

// compressAndDeliver runs on a pool worker. Whatever happens, the input
// file is released exactly once and the output file never outlives the
// job.
func (uc *UseCase) compressAndDeliver(ctx context.Context, userID, chatID int64, messageID int, item *entities.MediaItem) {
	defer uc.files.Release(item.SourcePath)

	outputPath, err := uc.files.Acquire(outputExt(item))
	if err != nil {
		uc.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to acquire output file")
		uc.editStatus(ctx, chatID, messageID, fmt.Sprintf(msgCompressionFailed, "internal storage error"))
		return
	}
	defer uc.files.Release(outputPath)

	start := time.Now()
	if err := uc.engine.Transcode(ctx, item.SourcePath, outputPath); err != nil {
		uc.metrics.TranscodeFailures.Inc()
		failure := fmt.Errorf("%w: %s", mediaerrors.ErrTranscodeFailed, err)
		uc.logger.Error().Err(failure).Int64("user_id", userID).Str("input", item.SourcePath).Msg("Transcode failed")
		uc.editStatus(ctx, chatID, messageID, fmt.Sprintf(msgCompressionFailed, err))
		return
	}
	uc.metrics.TranscodeDuration.Observe(time.Since(start).Seconds())

	if err := uc.messenger.SendDocumentFile(ctx, chatID, outputPath, compressedName(item.DisplayName)); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to deliver compressed file")
		uc.editStatus(ctx, chatID, messageID, fmt.Sprintf(msgCompressionFailed, "could not send the result"))
		return
	}

	uc.metrics.Deliveries.WithLabelValues("compressed").Inc()
	uc.editStatus(ctx, chatID, messageID, msgCompressedSent)

	uc.logger.Info().
		Int64("user_id", userID).
		Str("file", item.DisplayName).
		Dur("elapsed", time.Since(start)).
		Msg("Compressed file delivered")
}

// reply sends a plain text reply, logging failures only
func (uc *UseCase) reply(ctx context.Context, chatID int64, text string) {
	if err := uc.messenger.SendText(ctx, chatID, text); err != nil {
		uc.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send reply")
	}
}

// editStatus updates the prompt message, logging failures only
func (uc *UseCase) editStatus(ctx context.Context, chatID int64, messageID int, text string) {
	if messageID == 0 {
		uc.reply(ctx, chatID, text)
		return
	}
	if err := uc.messenger.EditStatus(ctx, chatID, messageID, text); err != nil {
		uc.logger.Warn().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("Failed to edit status message")
	}
}

// defaultDisplayName mirrors what Telegram clients name unnamed uploads
func defaultDisplayName(kind entities.MediaKind) string {
	if kind == entities.MediaKindAnimation {
		return defaultAnimationName
	}
	return defaultVideoName
}

// outputExt normalizes both video and animation output to the mp4
// container; anything else keeps its original extension
func outputExt(item *entities.MediaItem) string {
	switch item.Kind {
	case entities.MediaKindVideo, entities.MediaKindAnimation:
		return compressedExt
	default:
		return filepath.Ext(item.DisplayName)
	}
}

// compressedName derives the outgoing filename for a compressed file
// from the original display name
func compressedName(displayName string) string {
	base := strings.TrimSuffix(displayName, filepath.Ext(displayName))
	if base == "" {
		base = "video"
	}
	return base + compressedExt
}
