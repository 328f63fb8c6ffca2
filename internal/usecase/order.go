package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/repository"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
)

// PaymentGateway settles money movements backing financial transitions.
// Calls happen inside the owning transaction boundary: an error aborts
// the transition with no partial commit.
type PaymentGateway interface {
	Capture(ctx context.Context, reference string, amount int64) error
	Refund(ctx context.Context, reference string, amount int64) error
}

// ReviewStore receives review content once the engine authorized it.
// The engine itself keeps only the (product, buyer) dedup marker.
type ReviewStore interface {
	Add(ctx context.Context, productID int64, rating int, content string) error
}

// OrderTransitionPayload carries optional data accompanying an order
// transition request.
type OrderTransitionPayload struct {
	Reason            string
	TrackingNumber    string
	EstimatedDelivery *time.Time

	// RequestedBy/RequestedAt are stamped by the request workflow for
	// reason-bearing actions.
	RequestedBy int64
	RequestedAt time.Time
}

// transitionRecord is the JSON payload stored with every lifecycle event.
type transitionRecord struct {
	From        string     `json:"from"`
	To          string     `json:"to"`
	ActorID     int64      `json:"actor_id"`
	ActorRole   string     `json:"actor_role"`
	Reason      string     `json:"reason,omitempty"`
	RequestedBy int64      `json:"requested_by,omitempty"`
	RequestedAt *time.Time `json:"requested_at,omitempty"`
	At          time.Time  `json:"at"`
}

func newEvent(aggregate model.AggregateType, aggregateID int64, eventType string, actor model.Actor, record transitionRecord) model.Event {
	payload, _ := json.Marshal(record)
	return model.Event{
		AggregateType: aggregate,
		AggregateID:   aggregateID,
		Type:          eventType,
		ActorID:       actor.ID,
		ActorRole:     actor.Role,
		Payload:       payload,
	}
}

var orderEventTypes = map[transition.Action]string{
	transition.ActionConfirm: model.EventOrderConfirmed,
	transition.ActionProcess: model.EventOrderProcessing,
	transition.ActionShip:    model.EventOrderShipped,
	transition.ActionDeliver: model.EventOrderDelivered,
	transition.ActionCancel:  model.EventOrderCancelled,
	transition.ActionReturn:  model.EventOrderReturned,
}

// OrderUseCase owns the order aggregate lifecycle: it validates
// transitions against the decision table, guards the monetary
// invariants, and applies all-or-nothing mutations.
type OrderUseCase struct {
	orders  repository.OrderRepository
	events  repository.EventRepository
	gateway PaymentGateway
	reviews ReviewStore
	logger  *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, events repository.EventRepository, gateway PaymentGateway, reviews ReviewStore, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, events: events, gateway: gateway, reviews: reviews, logger: logger}
}

// Create registers a new order at checkout commit. Totals are computed
// server side so the money identity holds by construction.
func (u *OrderUseCase) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if order.BuyerID <= 0 {
		return nil, fmt.Errorf("%w: buyer is required", domainErrors.ErrInvalidArgument)
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domainErrors.ErrInvalidArgument)
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ProductID <= 0 || item.SellerID <= 0 {
			return nil, fmt.Errorf("%w: item product and seller are required", domainErrors.ErrInvalidArgument)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", domainErrors.ErrInvalidArgument)
		}
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: item unit price must not be negative", domainErrors.ErrInvalidArgument)
		}
		item.TotalPrice = item.Quantity * item.UnitPrice
	}
	if order.ShippingCost < 0 || order.TaxAmount < 0 || order.DiscountAmount < 0 {
		return nil, fmt.Errorf("%w: shipping, tax and discount must not be negative", domainErrors.ErrInvalidArgument)
	}

	order.Status = model.OrderStatusPending
	order.PaymentStatus = model.PaymentStatusPending
	order.Subtotal = order.ComputedSubtotal()
	order.TotalAmount = order.ComputedTotal()

	if err := ValidateOrderLedger(order); err != nil {
		u.logger.Error("order ledger invariant broken on create", slog.String("error", err.Error()))
		return nil, err
	}
	return u.orders.Create(ctx, order)
}

// Get returns the last committed order snapshot.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// Events returns the append-only lifecycle log of an order.
func (u *OrderUseCase) Events(ctx context.Context, orderID int64) ([]model.Event, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return u.events.ListByAggregate(ctx, model.AggregateOrder, orderID)
}

// Submit applies a lifecycle transition to the order. The decision
// table is consulted on the freshly loaded aggregate even when a
// read-side Can helper already allowed the action, and the mutation is
// rejected on version mismatch, so a stale check cannot commit.
func (u *OrderUseCase) Submit(ctx context.Context, orderID int64, action transition.Action, actor model.Actor, payload OrderTransitionPayload) (*model.Order, error) {
	if action == transition.ActionReview {
		return nil, fmt.Errorf("%w: reviews are submitted through the review endpoint", domainErrors.ErrInvalidArgument)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	to, err := transition.Decide(transition.EntityOrder, string(order.Status), action, actor.Role)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleBuyer && actor.ID != order.BuyerID {
		return nil, fmt.Errorf("%w: order belongs to another buyer", domainErrors.ErrForbidden)
	}
	if actor.Role == model.RoleSeller && !orderContainsSeller(order, actor.ID) {
		return nil, fmt.Errorf("%w: no items in this order belong to the seller", domainErrors.ErrForbidden)
	}

	var reason string
	if transition.RequiresReason(transition.EntityOrder, action) {
		if reason, err = ValidateReason(payload.Reason); err != nil {
			return nil, err
		}
	}

	if err := ValidateOrderLedger(order); err != nil {
		u.logger.Error("order ledger invariant broken before transition",
			slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
		return nil, err
	}

	record := transitionRecord{
		From:      string(order.Status),
		To:        to,
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
		Reason:    reason,
		At:        time.Now().UTC(),
	}
	if payload.RequestedBy != 0 {
		record.RequestedBy = payload.RequestedBy
		requestedAt := payload.RequestedAt
		record.RequestedAt = &requestedAt
	}

	change := repository.OrderTransition{
		OrderID:         order.ID,
		ExpectedVersion: order.Version,
		From:            order.Status,
		To:              model.OrderStatus(to),
		Event:           newEvent(model.AggregateOrder, order.ID, orderEventTypes[action], actor, record),
	}

	reference := fmt.Sprintf("order-%d", order.ID)
	switch action {
	case transition.ActionConfirm:
		// Funds are captured when the seller commits to the order.
		if order.PaymentStatus == model.PaymentStatusPending {
			paid := model.PaymentStatusPaid
			change.PaymentStatus = &paid
			amount := order.TotalAmount
			change.Settle = func(ctx context.Context) error {
				return u.gateway.Capture(ctx, reference, amount)
			}
		}
	case transition.ActionShip:
		if payload.TrackingNumber != "" {
			tracking := payload.TrackingNumber
			change.TrackingNumber = &tracking
		}
		change.EstimatedDelivery = payload.EstimatedDelivery
	case transition.ActionDeliver:
		change.StampActualDelivery = true
	case transition.ActionCancel:
		change.CancellationReason = &reason
		u.refundIfPaid(order, &change, reference)
	case transition.ActionReturn:
		change.ReturnReason = &reason
		u.refundIfPaid(order, &change, reference)
	}

	return u.orders.ApplyTransition(ctx, change)
}

func (u *OrderUseCase) refundIfPaid(order *model.Order, change *repository.OrderTransition, reference string) {
	if order.PaymentStatus != model.PaymentStatusPaid {
		return
	}
	refunded := model.PaymentStatusRefunded
	change.PaymentStatus = &refunded
	amount := order.TotalAmount
	change.Settle = func(ctx context.Context) error {
		return u.gateway.Refund(ctx, reference, amount)
	}
}

// Review authorizes a product review against a delivered order,
// records the dedup marker, and forwards the content to the external
// review store.
func (u *OrderUseCase) Review(ctx context.Context, orderID, productID int64, actor model.Actor, rating int, content string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domainErrors.ErrInvalidArgument)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if _, err := transition.Decide(transition.EntityOrder, string(order.Status), transition.ActionReview, actor.Role); err != nil {
		return err
	}
	if actor.ID != order.BuyerID {
		return fmt.Errorf("%w: order belongs to another buyer", domainErrors.ErrForbidden)
	}
	if !orderContainsProduct(order, productID) {
		return fmt.Errorf("%w: product %d is not part of order %d", domainErrors.ErrInvalidArgument, productID, orderID)
	}

	event := newEvent(model.AggregateOrder, order.ID, model.EventOrderReviewed, actor, transitionRecord{
		From:      string(order.Status),
		To:        string(order.Status),
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
		At:        time.Now().UTC(),
	})
	// The store call rides inside the marker transaction so a store
	// outage never consumes the buyer's review slot.
	return u.orders.AddReviewMarker(ctx, productID, actor.ID, event, func(ctx context.Context) error {
		if err := u.reviews.Add(ctx, productID, rating, content); err != nil {
			u.logger.Error("review store rejected content",
				slog.Int64("product_id", productID), slog.String("error", err.Error()))
			return fmt.Errorf("%w: review store: %v", domainErrors.ErrUpstreamFailure, err)
		}
		return nil
	})
}

// CanCancel reports whether the actor could cancel the order snapshot.
// UI affordance only; Submit re-checks on the mutating path.
func (u *OrderUseCase) CanCancel(order *model.Order, actor model.Actor) bool {
	return actor.ID == order.BuyerID &&
		transition.Can(transition.EntityOrder, string(order.Status), transition.ActionCancel, actor.Role)
}

// CanReturn reports whether the actor could return the order snapshot.
func (u *OrderUseCase) CanReturn(order *model.Order, actor model.Actor) bool {
	return actor.ID == order.BuyerID &&
		transition.Can(transition.EntityOrder, string(order.Status), transition.ActionReturn, actor.Role)
}

// CanReview reports whether the actor could review the order snapshot.
func (u *OrderUseCase) CanReview(order *model.Order, actor model.Actor) bool {
	return actor.ID == order.BuyerID &&
		transition.Can(transition.EntityOrder, string(order.Status), transition.ActionReview, actor.Role)
}

func orderContainsProduct(order *model.Order, productID int64) bool {
	for _, item := range order.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func orderContainsSeller(order *model.Order, sellerID int64) bool {
	for _, item := range order.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}
