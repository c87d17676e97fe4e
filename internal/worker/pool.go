// Package worker writes request outcomes to the request log off the request
// path.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/ports"
)

const writeTimeout = 5 * time.Second

// Pool manages background workers that persist outcomes.
type Pool struct {
	repo   ports.RequestLog
	logger *log.Logger
	jobs   chan domain.Outcome
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a pool with the given queue size. Call Start to launch
// workers.
func NewPool(repo ports.RequestLog, queueSize int, logger *log.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pool{repo: repo, logger: logger, jobs: make(chan domain.Outcome, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for o := range p.jobs {
				p.process(o)
			}
		}()
	}
}

// Stop drains the queue and waits for workers to finish. Outcomes submitted
// afterwards are dropped.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// RecordOutcome queues o without blocking.
func (p *Pool) RecordOutcome(o domain.Outcome) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.logger.Warn("worker: pool stopped, dropping outcome", "session", o.SessionID)
		return
	}
	select {
	case p.jobs <- o:
	default:
		p.logger.Warn("worker: queue full, dropping outcome", "session", o.SessionID)
	}
}

func (p *Pool) process(o domain.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.repo.Record(ctx, o); err != nil {
		p.logger.Warn("worker: failed to record outcome", "session", o.SessionID, "err", err)
		return
	}
	p.logger.Debug("outcome recorded", "session", o.SessionID, "status", o.Status, "songs", o.SongCount)
}
