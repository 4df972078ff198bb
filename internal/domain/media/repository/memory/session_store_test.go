package memory

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/yourusername/telegram-video-bot/internal/domain/media/entities"
)

func item(path string) *entities.MediaItem {
	return &entities.MediaItem{
		SourcePath:  path,
		Kind:        entities.MediaKindVideo,
		DisplayName: "clip.mp4",
	}
}

func TestPut_ReturnsNilForFirstItem(t *testing.T) {
	store := NewSessionStore()

	prev := store.Put(1, item("/tmp/a.mp4"))
	if prev != nil {
		t.Errorf("Expected no previous item, got %+v", prev)
	}
}

func TestPut_ReturnsSupersededItem(t *testing.T) {
	store := NewSessionStore()

	store.Put(1, item("/tmp/a.mp4"))
	prev := store.Put(1, item("/tmp/b.mp4"))

	if prev == nil || prev.SourcePath != "/tmp/a.mp4" {
		t.Fatalf("Expected superseded item /tmp/a.mp4, got %+v", prev)
	}

	got, ok := store.Take(1)
	if !ok || got.SourcePath != "/tmp/b.mp4" {
		t.Errorf("Expected only newest item deliverable, got %+v ok=%v", got, ok)
	}
}

func TestTake_AbsentUser(t *testing.T) {
	store := NewSessionStore()

	if _, ok := store.Take(42); ok {
		t.Error("Expected absent for unknown user")
	}
}

func TestTake_ClearsEntry(t *testing.T) {
	store := NewSessionStore()
	store.Put(1, item("/tmp/a.mp4"))

	first, ok := store.Take(1)
	if !ok || first == nil {
		t.Fatal("Expected item on first take")
	}

	if _, ok := store.Take(1); ok {
		t.Error("Expected absent on second take")
	}

	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d", store.Len())
	}
}

func TestTake_UsersAreIsolated(t *testing.T) {
	store := NewSessionStore()
	store.Put(1, item("/tmp/a.mp4"))
	store.Put(2, item("/tmp/b.mp4"))

	if _, ok := store.Take(1); !ok {
		t.Fatal("Expected item for user 1")
	}
	if got, ok := store.Take(2); !ok || got.SourcePath != "/tmp/b.mp4" {
		t.Errorf("User 2 entry affected by user 1 take: %+v ok=%v", got, ok)
	}
}

// TestTake_ConcurrentClicksYieldItemOnce models repeated button presses:
// no matter how many racers, exactly one gets the item.
func TestTake_ConcurrentClicksYieldItemOnce(t *testing.T) {
	store := NewSessionStore()
	store.Put(1, item("/tmp/a.mp4"))

	const racers = 32
	var won int32
	var wg sync.WaitGroup

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := store.Take(1); ok {
				atomic.AddInt32(&won, 1)
			}
		}()
	}
	wg.Wait()

	if won != 1 {
		t.Errorf("Expected exactly one successful take, got %d", won)
	}
}
