// Package errors contains domain-specific errors for the media domain
package errors

import (
	pkgerrors "github.com/yourusername/telegram-video-bot/pkg/errors"
)

// Domain errors for media session operations
var (
	ErrUnsupportedMedia = pkgerrors.NewValidationError("unsupported media type, expected a video or animation")
	ErrMissingSession   = pkgerrors.NewNotFoundError("no media file currently stored")
	ErrDownloadFailed   = pkgerrors.NewInternalError("failed to download media file")
	ErrTranscodeFailed  = pkgerrors.NewInternalError("transcode process failed")
	ErrDeliveryFailed   = pkgerrors.NewInternalError("file delivery failed")
	ErrQueueBusy        = pkgerrors.NewInternalError("transcode queue is full")
)
