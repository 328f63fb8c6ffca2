package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type outboxFacadeStub struct {
	mu         sync.Mutex
	pending    []model.Event
	notifyErr  error
	fetchErr   error
	markErr    error
	notified   []int64
	dispatched []int64
}

func (s *outboxFacadeStub) PendingEvents(ctx context.Context, limit int) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if len(s.pending) == 0 {
		return nil, nil
	}
	if limit > len(s.pending) {
		limit = len(s.pending)
	}
	batch := s.pending[:limit]
	s.pending = s.pending[limit:]
	return batch, nil
}

func (s *outboxFacadeStub) Notify(ctx context.Context, event model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notifyErr != nil {
		return s.notifyErr
	}
	s.notified = append(s.notified, event.ID)
	return nil
}

func (s *outboxFacadeStub) MarkDispatched(ctx context.Context, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	s.dispatched = append(s.dispatched, eventID)
	return nil
}

func (s *outboxFacadeStub) dispatchedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dispatched)
}

func (s *outboxFacadeStub) notifiedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notified)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestDispatcherDeliversAndMarksEvents(t *testing.T) {
	facade := &outboxFacadeStub{
		pending: []model.Event{
			{ID: 1, Type: model.EventOrderConfirmed},
			{ID: 2, Type: model.EventOrderShipped},
			{ID: 3, Type: model.EventMilestonePaymentReleased},
		},
	}
	dispatcher := NewOutboxDispatcher(facade, 10*time.Millisecond, 2, 2, testLogger())

	dispatcher.Start(context.Background())
	waitFor(t, 2*time.Second, func() bool { return facade.dispatchedCount() == 3 })
	dispatcher.Stop()

	if facade.notifiedCount() != 3 {
		t.Fatalf("expected 3 deliveries, got %d", facade.notifiedCount())
	}
}

func TestDispatcherLeavesEventsPendingOnDeliveryFailure(t *testing.T) {
	facade := &outboxFacadeStub{
		pending:   []model.Event{{ID: 1, Type: model.EventOrderConfirmed}},
		notifyErr: errors.New("webhook down"),
	}
	dispatcher := NewOutboxDispatcher(facade, 10*time.Millisecond, 1, 1, testLogger())

	dispatcher.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	dispatcher.Stop()

	if facade.dispatchedCount() != 0 {
		t.Fatalf("expected no dispatch marks, got %d", facade.dispatchedCount())
	}
}

func TestDispatcherSurvivesFetchErrors(t *testing.T) {
	facade := &outboxFacadeStub{fetchErr: errors.New("db down")}
	dispatcher := NewOutboxDispatcher(facade, 10*time.Millisecond, 1, 1, testLogger())

	dispatcher.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	dispatcher.Stop()
}

func TestDispatcherSurvivesMarkErrors(t *testing.T) {
	facade := &outboxFacadeStub{
		pending: []model.Event{{ID: 1, Type: model.EventOrderConfirmed}},
		markErr: errors.New("db down"),
	}
	dispatcher := NewOutboxDispatcher(facade, 10*time.Millisecond, 1, 1, testLogger())

	dispatcher.Start(context.Background())
	waitFor(t, 2*time.Second, func() bool { return facade.notifiedCount() == 1 })
	dispatcher.Stop()
}

func TestDispatcherStopWithoutStart(t *testing.T) {
	dispatcher := NewOutboxDispatcher(&outboxFacadeStub{}, time.Second, 1, 1, testLogger())
	dispatcher.Stop()
}

func TestDispatcherDefaults(t *testing.T) {
	dispatcher := NewOutboxDispatcher(&outboxFacadeStub{}, time.Second, 0, 0, testLogger())
	if dispatcher.workers != 1 || dispatcher.batchSize != 1 {
		t.Fatalf("expected defaults of 1, got workers=%d batch=%d", dispatcher.workers, dispatcher.batchSize)
	}
}
