package handlers

import (
	"context"

	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
	OrderEvents(ctx context.Context, orderID int64) ([]model.Event, error)
	SubmitOrderTransition(ctx context.Context, orderID int64, action transition.Action, actor model.Actor, payload usecase.OrderTransitionPayload) (*model.Order, error)
	Review(ctx context.Context, orderID, productID int64, actor model.Actor, rating int, content string) error
}

// MilestoneFacade encapsulates project and milestone operations exposed
// via HTTP.
type MilestoneFacade interface {
	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	Project(ctx context.Context, projectID int64) (*model.Project, error)
	CreateMilestone(ctx context.Context, milestone *model.Milestone) (*model.Milestone, error)
	Milestone(ctx context.Context, milestoneID int64) (*model.Milestone, error)
	AdvanceMilestone(ctx context.Context, milestoneID int64, action transition.Action, actor model.Actor, payload usecase.MilestoneTransitionPayload) (*model.Milestone, error)
}

// RequestFacade processes reason-bearing workflow requests.
type RequestFacade interface {
	SubmitRequest(ctx context.Context, entity transition.EntityType, entityID int64, kind usecase.RequestKind, actor model.Actor, reason string) (*usecase.RequestResult, error)
}

// FulfillmentFacade aggregates the full set of operations used across
// handlers.
type FulfillmentFacade interface {
	OrderFacade
	MilestoneFacade
	RequestFacade
}
