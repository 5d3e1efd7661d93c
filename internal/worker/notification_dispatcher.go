package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainerrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// Sender delivers a single composed message.
type Sender interface {
	Send(ctx context.Context, msg model.Message) error
}

// NotificationDispatcher delivers messages in the background so request
// handlers never wait on the mail transport.
type NotificationDispatcher struct {
	sender      Sender
	workers     int
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger

	jobs    chan model.Message
	quit    chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	stopped bool
}

// NewNotificationDispatcher constructs the worker pool. Nothing runs until Start.
func NewNotificationDispatcher(sender Sender, workers, queueSize int, timeout time.Duration, maxAttempts int, retryDelay time.Duration, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &NotificationDispatcher{
		sender:      sender,
		workers:     workers,
		timeout:     timeout,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
		jobs:        make(chan model.Message, queueSize),
		quit:        make(chan struct{}),
	}
}

// Start launches the workers. Calling it more than once is a no-op.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	runCtx := context.WithoutCancel(ctx)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop rejects new messages and waits until queued ones are handled.
// Pending retries run without their backoff delay.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.quit)
		close(d.jobs)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue schedules msg for delivery without blocking.
func (d *NotificationDispatcher) Enqueue(msg model.Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return domainerrors.ErrNotification
	}

	select {
	case d.jobs <- msg:
		return nil
	default:
		d.logger.Warn("notification queue full",
			slog.String("kind", string(msg.Kind)),
			slog.String("reference", msg.Reference),
		)
		return domainerrors.ErrQueueFull
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for msg := range d.jobs {
		d.deliver(ctx, msg)
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, msg model.Message) {
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err = d.attempt(ctx, msg); err == nil {
			d.logger.Info("notification sent",
				slog.String("kind", string(msg.Kind)),
				slog.String("reference", msg.Reference),
				slog.Int("attempt", attempt),
			)
			return
		}

		d.logger.Warn("notification attempt failed",
			slog.String("kind", string(msg.Kind)),
			slog.String("reference", msg.Reference),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		if attempt < d.maxAttempts {
			d.backoff(time.Duration(attempt) * d.retryDelay)
		}
	}

	d.logger.Error("notification dropped",
		slog.String("kind", string(msg.Kind)),
		slog.String("reference", msg.Reference),
		slog.String("error", err.Error()),
	)
}

func (d *NotificationDispatcher) backoff(delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-d.quit:
	}
}

func (d *NotificationDispatcher) attempt(ctx context.Context, msg model.Message) error {
	if d.timeout <= 0 {
		return d.sender.Send(ctx, msg)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.sender.Send(attemptCtx, msg)
}
