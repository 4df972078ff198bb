// Package deps contains interface definitions for the media domain dependencies
package deps

import (
	"context"

	"github.com/yourusername/telegram-video-bot/internal/domain/media/entities"
)

// Messenger defines the chat transport consumed by the use case.
// This interface is used to break the cyclic dependency between UseCase
// and the Telegram handlers.
type Messenger interface {
	// SendText sends a plain text message to a chat
	SendText(ctx context.Context, chatID int64, text string) error

	// SendChoicePrompt sends the two-button original/compress prompt and
	// returns the telegram message ID of the prompt
	SendChoicePrompt(ctx context.Context, chatID int64, text string) (messageID int, err error)

	// SendDocumentFile uploads the file at path as a document named filename
	SendDocumentFile(ctx context.Context, chatID int64, path, filename string) error

	// EditStatus replaces the text of a previously sent message; used for
	// progress and terminal status updates on the prompt message
	EditStatus(ctx context.Context, chatID int64, messageID int, text string) error

	// DownloadToFile fetches the uploaded file identified by fileID into
	// the already existing file at destPath
	DownloadToFile(ctx context.Context, fileID, destPath string) error
}

// FileStore manages transient on-disk files
type FileStore interface {
	// Acquire creates a uniquely named empty file with the given suffix
	Acquire(suffix string) (string, error)

	// Release deletes the file at path; idempotent and best-effort
	Release(path string)
}

// Engine runs the external transcoding process
type Engine interface {
	// Transcode re-encodes inputPath into outputPath synchronously
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// SessionRepository holds the single pending media item per user
type SessionRepository interface {
	// Put stores item as the sole pending item for userID and returns the
	// superseded item, if any; the caller owns the superseded item's file
	Put(userID int64, item *entities.MediaItem) (previous *entities.MediaItem)

	// Take atomically reads and clears the entry for userID
	Take(userID int64) (*entities.MediaItem, bool)
}

// JobQueue offloads blocking work from the update-handling path
type JobQueue interface {
	// Submit enqueues job for execution on a worker; returns an error when
	// the queue cannot accept more work
	Submit(job func(ctx context.Context)) error
}
