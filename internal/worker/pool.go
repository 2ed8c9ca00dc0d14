package worker

import (
	"errors"
	"log/slog"
	"sync"

	"portfolio-site/internal/models"
)

// ErrQueueFull is returned when the notification queue cannot take another job.
var ErrQueueFull = errors.New("notification queue is full")

// ErrStopped is returned for jobs enqueued after Stop.
var ErrStopped = errors.New("notification pool stopped")

type notifier interface {
	SendContactNotification(msg *models.ContactMessage) error
}

// Pool delivers contact notifications off the request path.
type Pool struct {
	notifier    notifier
	jobs        chan *models.ContactMessage
	workerCount int

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewPool(n notifier, workerCount, queueSize int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		notifier:    n,
		jobs:        make(chan *models.ContactMessage, queueSize),
		workerCount: workerCount,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	slog.Info("notification workers started", "count", p.workerCount)
}

// Stop drains queued jobs and waits for the workers to exit.
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

// SendContactNotification queues msg for delivery and returns immediately.
func (p *Pool) SendContactNotification(msg *models.ContactMessage) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrStopped
	}

	select {
	case p.jobs <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for msg := range p.jobs {
		if err := p.notifier.SendContactNotification(msg); err != nil {
			slog.Error("contact notification failed", "worker", id, "contact_id", msg.ID, "error", err)
			continue
		}
		slog.Debug("contact notification sent", "worker", id, "contact_id", msg.ID)
	}

	slog.Debug("notification worker shutting down", "worker", id)
}
