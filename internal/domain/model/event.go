package model

import (
	"encoding/json"
	"time"
)

// AggregateType names the aggregate an event belongs to.
type AggregateType string

const (
	AggregateOrder     AggregateType = "order"
	AggregateMilestone AggregateType = "milestone"
)

// Event types recorded in the aggregate event log.
const (
	EventOrderCreated             = "order.created"
	EventOrderConfirmed           = "order.confirmed"
	EventOrderProcessing          = "order.processing"
	EventOrderShipped             = "order.shipped"
	EventOrderDelivered           = "order.delivered"
	EventOrderCancelled           = "order.cancelled"
	EventOrderReturned            = "order.returned"
	EventOrderReviewed            = "order.reviewed"
	EventMilestoneStarted         = "milestone.started"
	EventMilestoneSubmitted       = "milestone.submitted"
	EventMilestoneRejected        = "milestone.rejected"
	EventMilestonePaymentReleased = "milestone.payment_released"
	EventDisputeOpened            = "dispute.opened"
)

// Event is an append-only record of a committed state change. Rows with
// DispatchedAt unset form the pending outbox consumed by the notifier
// worker; dispatch failures never affect the originating transition.
type Event struct {
	ID            int64
	AggregateType AggregateType
	AggregateID   int64
	Type          string
	ActorID       int64
	ActorRole     Role
	Payload       json.RawMessage
	CreatedAt     time.Time
	DispatchedAt  *time.Time
}
