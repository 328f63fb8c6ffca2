package test

import (
	"context"
	"sync"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// SettlementCall records a payment gateway invocation.
type SettlementCall struct {
	Reference string
	Amount    int64
}

// GatewayStub simulates the payment gateway collaborator.
type GatewayStub struct {
	CaptureFn func(context.Context, string, int64) error
	RefundFn  func(context.Context, string, int64) error
	Captures  []SettlementCall
	Refunds   []SettlementCall
}

// Capture records the call or delegates to the override.
func (s *GatewayStub) Capture(ctx context.Context, reference string, amount int64) error {
	if s.CaptureFn != nil {
		return s.CaptureFn(ctx, reference, amount)
	}
	s.Captures = append(s.Captures, SettlementCall{Reference: reference, Amount: amount})
	return nil
}

// Refund records the call or delegates to the override.
func (s *GatewayStub) Refund(ctx context.Context, reference string, amount int64) error {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, reference, amount)
	}
	s.Refunds = append(s.Refunds, SettlementCall{Reference: reference, Amount: amount})
	return nil
}

// ReviewRecord captures content forwarded to the review store.
type ReviewRecord struct {
	ProductID int64
	Rating    int
	Content   string
}

// ReviewStoreStub simulates the external review store.
type ReviewStoreStub struct {
	AddFn func(context.Context, int64, int, string) error
	Added []ReviewRecord
}

// Add records the review or delegates to the override.
func (s *ReviewStoreStub) Add(ctx context.Context, productID int64, rating int, content string) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, productID, rating, content)
	}
	s.Added = append(s.Added, ReviewRecord{ProductID: productID, Rating: rating, Content: content})
	return nil
}

// NotifierStub simulates the notification webhook; safe for use from
// worker goroutines.
type NotifierStub struct {
	NotifyFn func(context.Context, model.Event) error

	mu       sync.Mutex
	Notified []model.Event
}

// Notify records the event or delegates to the override.
func (s *NotifierStub) Notify(ctx context.Context, event model.Event) error {
	if s.NotifyFn != nil {
		return s.NotifyFn(ctx, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notified = append(s.Notified, event)
	return nil
}

// NotifiedCount returns how many events were delivered so far.
func (s *NotifierStub) NotifiedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Notified)
}
