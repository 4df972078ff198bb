// Package dto contains data transfer objects for the media domain
package dto

import "github.com/yourusername/telegram-video-bot/internal/domain/media/entities"

// StartCommandRequest represents a request to handle /start command
type StartCommandRequest struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// CommandResponse represents a response for bot commands
type CommandResponse struct {
	Message string `json:"message"`
}

// UploadRequest represents an incoming supported media upload
type UploadRequest struct {
	UserID   int64              `json:"userId" validate:"required"`
	ChatID   int64              `json:"chatId" validate:"required"`
	FileID   string             `json:"fileId" validate:"required"`
	FileName string             `json:"fileName"`
	Kind     entities.MediaKind `json:"kind" validate:"required"`
}

// DecisionRequest represents a button click on the choice prompt
type DecisionRequest struct {
	UserID    int64             `json:"userId" validate:"required"`
	ChatID    int64             `json:"chatId" validate:"required"`
	MessageID int               `json:"messageId"`
	Decision  entities.Decision `json:"decision" validate:"required"`
}
