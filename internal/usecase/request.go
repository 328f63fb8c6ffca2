package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/repository"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
)

// RequestKind names a reason-bearing workflow.
type RequestKind string

const (
	RequestCancel  RequestKind = "cancel"
	RequestReturn  RequestKind = "return"
	RequestDispute RequestKind = "dispute"
)

// RequestResult is the entity snapshot returned after a request is
// processed.
type RequestResult struct {
	Order     *model.Order
	Milestone *model.Milestone
}

// RequestUseCase is the single entry point for reason-bearing actions.
// It validates the free-text reason, stamps requestedBy/requestedAt
// onto the audit trail, and delegates the mutation to the owning
// aggregate manager. Every reason-bearing workflow goes through here so
// validation and audit behavior stay uniform across entity types.
type RequestUseCase struct {
	orders     *OrderUseCase
	milestones *MilestoneUseCase
	events     repository.EventRepository
}

// NewRequestUseCase constructs RequestUseCase.
func NewRequestUseCase(orders *OrderUseCase, milestones *MilestoneUseCase, events repository.EventRepository) *RequestUseCase {
	return &RequestUseCase{orders: orders, milestones: milestones, events: events}
}

// Submit processes a cancel, return, or dispute request.
func (u *RequestUseCase) Submit(ctx context.Context, entity transition.EntityType, entityID int64, kind RequestKind, actor model.Actor, reason string) (*RequestResult, error) {
	trimmed, err := ValidateReason(reason)
	if err != nil {
		return nil, err
	}
	requestedAt := time.Now().UTC()

	switch kind {
	case RequestCancel, RequestReturn:
		if entity != transition.EntityOrder {
			return nil, fmt.Errorf("%w: %s requests apply to orders only", domainErrors.ErrInvalidArgument, kind)
		}
		action := transition.ActionCancel
		if kind == RequestReturn {
			action = transition.ActionReturn
		}
		order, err := u.orders.Submit(ctx, entityID, action, actor, OrderTransitionPayload{
			Reason:      trimmed,
			RequestedBy: actor.ID,
			RequestedAt: requestedAt,
		})
		if err != nil {
			return nil, err
		}
		return &RequestResult{Order: order}, nil
	case RequestDispute:
		return u.openDispute(ctx, entity, entityID, actor, trimmed, requestedAt)
	default:
		return nil, fmt.Errorf("%w: unknown request kind %q", domainErrors.ErrInvalidArgument, kind)
	}
}

// openDispute records that a dispute exists. Resolution is delegated
// to the external arbitration collaborator; no state changes here.
func (u *RequestUseCase) openDispute(ctx context.Context, entity transition.EntityType, entityID int64, actor model.Actor, reason string, requestedAt time.Time) (*RequestResult, error) {
	result := &RequestResult{}
	var aggregate model.AggregateType

	switch entity {
	case transition.EntityOrder:
		order, err := u.orders.Get(ctx, entityID)
		if err != nil {
			return nil, err
		}
		if actor.Role == model.RoleBuyer && actor.ID != order.BuyerID {
			return nil, fmt.Errorf("%w: order belongs to another buyer", domainErrors.ErrForbidden)
		}
		if actor.Role == model.RoleSeller && !orderContainsSeller(order, actor.ID) {
			return nil, fmt.Errorf("%w: no items in this order belong to the seller", domainErrors.ErrForbidden)
		}
		aggregate = model.AggregateOrder
		result.Order = order
	case transition.EntityMilestone:
		milestone, err := u.milestones.Get(ctx, entityID)
		if err != nil {
			return nil, err
		}
		project, err := u.milestones.GetProject(ctx, milestone.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := u.milestones.checkOwnership(project, actor); err != nil {
			return nil, err
		}
		aggregate = model.AggregateMilestone
		result.Milestone = milestone
	default:
		return nil, fmt.Errorf("%w: unknown entity type %q", domainErrors.ErrInvalidArgument, entity)
	}

	event := newEvent(aggregate, entityID, model.EventDisputeOpened, actor, transitionRecord{
		ActorID:     actor.ID,
		ActorRole:   string(actor.Role),
		Reason:      reason,
		RequestedBy: actor.ID,
		RequestedAt: &requestedAt,
		At:          requestedAt,
	})
	if _, err := u.events.Append(ctx, event); err != nil {
		return nil, err
	}
	return result, nil
}
