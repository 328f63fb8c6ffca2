package repository

import (
	"context"
	"time"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// OrderTransition describes an all-or-nothing order mutation. The
// update is applied only when the stored row still matches From and
// ExpectedVersion; otherwise the write is rejected with a concurrency
// conflict and nothing changes.
type OrderTransition struct {
	OrderID         int64
	ExpectedVersion int64
	From            model.OrderStatus
	To              model.OrderStatus

	TrackingNumber      *string
	EstimatedDelivery   *time.Time
	StampActualDelivery bool
	CancellationReason  *string
	ReturnReason        *string
	PaymentStatus       *model.PaymentStatus

	// Event is appended to the aggregate log in the same transaction.
	Event model.Event
	// Settle, when set, moves money at the payment gateway. It runs
	// inside the transaction boundary: a settlement error rolls the
	// whole transition back.
	Settle func(ctx context.Context) error
}

// OrderRepository describes persistence operations with order aggregates.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ApplyTransition(ctx context.Context, change OrderTransition) (*model.Order, error)
	// AddReviewMarker records that the buyer reviewed the product.
	// Duplicate markers fail with ErrDuplicateReview. The store
	// callback runs inside the same transaction; its failure rolls
	// the marker back so the buyer keeps the review slot.
	AddReviewMarker(ctx context.Context, productID, buyerID int64, event model.Event, store func(ctx context.Context) error) error
}
