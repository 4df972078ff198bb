// Package workers contains background workers for the media domain
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/telegram-video-bot/config"
	mediaerrors "github.com/yourusername/telegram-video-bot/internal/domain/media/errors"
)

// TranscodePool runs transcode jobs on a fixed set of workers so that one
// user's compression never stalls another user's upload or decision
// handling. Jobs are full closures: the pool knows nothing about media.
type TranscodePool struct {
	jobs    chan func(ctx context.Context)
	workers int
	timeout time.Duration
	logger  zerolog.Logger

	mu      sync.Mutex
	stopped bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewTranscodePool creates a pool sized from config
func NewTranscodePool(cfg *config.TranscodeConfig, logger zerolog.Logger) *TranscodePool {
	ctx, cancel := context.WithCancel(context.Background())

	return &TranscodePool{
		jobs:    make(chan func(ctx context.Context), cfg.QueueSize),
		workers: cfg.Workers,
		timeout: cfg.Timeout,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines
func (p *TranscodePool) Start() {
	p.logger.Info().Int("workers", p.workers).Msg("Starting transcode workers...")

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
}

func (p *TranscodePool) run(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		jobCtx := p.ctx
		var cancel context.CancelFunc = func() {}
		if p.timeout > 0 {
			jobCtx, cancel = context.WithTimeout(p.ctx, p.timeout)
		}

		start := time.Now()
		job(jobCtx)
		cancel()

		p.logger.Debug().Int("worker", id).Dur("elapsed", time.Since(start)).Msg("Transcode job finished")
	}
}

// Submit enqueues a job for execution. It never blocks the caller: when
// the queue is full or the pool is stopped the job is rejected.
func (p *TranscodePool) Submit(job func(ctx context.Context)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return mediaerrors.ErrQueueBusy
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return mediaerrors.ErrQueueBusy
	}
}

// Stop drains queued jobs and waits for in-flight ones. Each job is still
// bounded by the per-job timeout, so shutdown cannot hang on a stuck run.
func (p *TranscodePool) Stop() error {
	p.logger.Info().Msg("Stopping transcode workers...")

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()

	p.logger.Info().Msg("Transcode workers stopped")
	return nil
}
