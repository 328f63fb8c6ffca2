package repository

import (
	"context"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// EventRepository provides access to the append-only aggregate event
// log, which doubles as the notification outbox.
type EventRepository interface {
	Append(ctx context.Context, event model.Event) (*model.Event, error)
	ListByAggregate(ctx context.Context, aggregate model.AggregateType, aggregateID int64) ([]model.Event, error)
	SelectPendingBatch(ctx context.Context, limit int) ([]model.Event, error)
	MarkDispatched(ctx context.Context, eventID int64) error
}
