package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-video-bot/config"
)

func newTestPool(workers, queueSize int, timeout time.Duration) *TranscodePool {
	cfg := &config.TranscodeConfig{
		Workers:   workers,
		QueueSize: queueSize,
		Timeout:   timeout,
	}
	return NewTranscodePool(cfg, zerolog.Nop())
}

func TestSubmit_JobRuns(t *testing.T) {
	pool := newTestPool(1, 4, 0)
	pool.Start()
	defer pool.Stop()

	done := make(chan struct{})
	err := pool.Submit(func(ctx context.Context) {
		close(done)
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Job was never executed")
	}
}

func TestSubmit_QueueFull(t *testing.T) {
	pool := newTestPool(1, 1, 0)
	pool.Start()
	defer pool.Stop()

	block := make(chan struct{})
	defer close(block)

	// Occupy the single worker
	_ = pool.Submit(func(ctx context.Context) { <-block })

	// Fill the queue; eventually Submit must reject instead of blocking
	var rejected bool
	for i := 0; i < 10; i++ {
		if err := pool.Submit(func(ctx context.Context) {}); err != nil {
			rejected = true
			break
		}
	}

	if !rejected {
		t.Error("Expected Submit to reject when queue is full")
	}
}

func TestSubmit_AfterStop(t *testing.T) {
	pool := newTestPool(1, 4, 0)
	pool.Start()

	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if err := pool.Submit(func(ctx context.Context) {}); err == nil {
		t.Error("Expected Submit after Stop to fail")
	}
}

func TestStop_DrainsQueuedJobs(t *testing.T) {
	pool := newTestPool(2, 16, 0)
	pool.Start()

	var ran int32
	for i := 0; i < 8; i++ {
		if err := pool.Submit(func(ctx context.Context) {
			atomic.AddInt32(&ran, 1)
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if got := atomic.LoadInt32(&ran); got != 8 {
		t.Errorf("Expected all 8 queued jobs to run before Stop returned, got %d", got)
	}
}

func TestJobTimeout_CancelsContext(t *testing.T) {
	pool := newTestPool(1, 4, 50*time.Millisecond)
	pool.Start()
	defer pool.Stop()

	cancelled := make(chan struct{})
	err := pool.Submit(func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("Job context was never cancelled by timeout")
	}
}
