// Package memory contains the in-memory session repository
package memory

import (
	"sync"

	"github.com/yourusername/telegram-video-bot/internal/domain/media/entities"
)

// SessionStore maps each user to at most one pending media item. It is
// pure mapping state: file lifecycle stays with the caller, which is why
// Put hands back the superseded item instead of deleting anything.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*entities.MediaItem
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*entities.MediaItem),
	}
}

// Put stores item as the sole pending item for userID and returns the
// previous item, if any
func (s *SessionStore) Put(userID int64, item *entities.MediaItem) *entities.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.sessions[userID]
	s.sessions[userID] = item
	return previous
}

// Take atomically reads and clears the entry for userID. A second Take
// without an intervening Put reports absent, which is what makes repeated
// button clicks on the same prompt safe.
func (s *SessionStore) Take(userID int64) (*entities.MediaItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	delete(s.sessions, userID)
	return item, true
}

// Len returns the number of pending sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
