package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// OutboxFacade exposes the subset of application functionality required
// by the dispatcher.
type OutboxFacade interface {
	PendingEvents(ctx context.Context, limit int) ([]model.Event, error)
	Notify(ctx context.Context, event model.Event) error
	MarkDispatched(ctx context.Context, eventID int64) error
}

// OutboxDispatcher polls the pending event log and delivers events to
// the notification webhook concurrently. An event is marked dispatched
// only after delivery succeeds, so consumers see at-least-once
// semantics and undelivered events survive restarts.
type OutboxDispatcher struct {
	facade       OutboxFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Event
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxDispatcher constructs outbox dispatcher worker pool.
func NewOutboxDispatcher(facade OutboxFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OutboxDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OutboxDispatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Event, batchSize*workers),
	}
}

// Start launches background dispatching.
func (d *OutboxDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (d *OutboxDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *OutboxDispatcher) dispatch(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetchAndDispatch(ctx)
		}
	}
}

func (d *OutboxDispatcher) fetchAndDispatch(ctx context.Context) {
	events, err := d.facade.PendingEvents(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("fetch pending events failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- event:
		}
	}
}

func (d *OutboxDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handleEvent(ctx, event)
		}
	}
}

func (d *OutboxDispatcher) handleEvent(ctx context.Context, event model.Event) {
	if err := d.facade.Notify(ctx, event); err != nil {
		// Delivery failed: leave the event pending so the next poll
		// retries it.
		d.logger.Error("event delivery failed",
			slog.Int64("event_id", event.ID),
			slog.String("type", event.Type),
			slog.String("error", err.Error()))
		return
	}

	if err := d.facade.MarkDispatched(ctx, event.ID); err != nil {
		d.logger.Error("mark dispatched failed",
			slog.Int64("event_id", event.ID),
			slog.String("error", err.Error()))
	}
}
