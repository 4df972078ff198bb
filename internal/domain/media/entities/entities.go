// Package entities contains domain entities
package entities

import "time"

// MediaKind classifies a supported upload
type MediaKind string

const (
	MediaKindVideo     MediaKind = "video"
	MediaKindAnimation MediaKind = "animation"
)

// Decision is the user's chosen action for a pending media item
type Decision string

const (
	DecisionOriginal Decision = "original"
	DecisionCompress Decision = "compress"
)

// MediaItem describes one downloaded file awaiting a decision. SourcePath
// is exclusively owned by the session holding the item until released.
type MediaItem struct {
	SourcePath  string    `json:"sourcePath"`
	Kind        MediaKind `json:"kind"`
	DisplayName string    `json:"displayName"`
	ChatID      int64     `json:"chatId"`
	CreatedAt   time.Time `json:"createdAt"`
}
