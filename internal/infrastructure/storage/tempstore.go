// Package storage contains the temporary file store
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TempStore creates and deletes transient on-disk files. Every acquired
// path is tracked until released so no two live sessions ever share one.
type TempStore struct {
	dir    string
	logger zerolog.Logger

	mu   sync.Mutex
	live map[string]struct{}
}

// NewTempStore creates a store rooted at dir, creating it if needed
func NewTempStore(dir string, logger zerolog.Logger) (*TempStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir %s: %w", dir, err)
	}

	return &TempStore{
		dir:    dir,
		logger: logger,
		live:   make(map[string]struct{}),
	}, nil
}

// Acquire creates a uniquely named empty file with the given suffix and
// returns its absolute path
func (s *TempStore) Acquire(suffix string) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString()+suffix)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	s.mu.Lock()
	s.live[path] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug().Str("path", path).Msg("Temp file acquired")
	return path, nil
}

// Release deletes the file at path. It is idempotent and best-effort:
// a missing file or a failed delete is logged, never returned, because
// cleanup must not block delivering a result to the user.
func (s *TempStore) Release(path string) {
	if path == "" {
		return
	}

	s.mu.Lock()
	delete(s.live, path)
	s.mu.Unlock()

	err := os.Remove(path)
	switch {
	case err == nil:
		s.logger.Debug().Str("path", path).Msg("Temp file released")
	case os.IsNotExist(err):
		s.logger.Debug().Str("path", path).Msg("Temp file already gone")
	default:
		s.logger.Warn().Str("path", path).Err(err).Msg("Failed to delete temp file")
	}
}

// Len returns the number of live acquired files
func (s *TempStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
