package facade

import (
	"context"
	"time"

	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateOrderFn func(context.Context, *model.Order) (*model.Order, error)
	OrderFn       func(context.Context, int64) (*model.Order, error)
	EventsFn      func(context.Context, int64) ([]model.Event, error)
	TransitionFn  func(context.Context, int64, transition.Action, model.Actor, usecase.OrderTransitionPayload) (*model.Order, error)
	ReviewFn      func(context.Context, int64, int64, model.Actor, int, string) error
}

// CreateOrder delegates to provided function or echoes the order back.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, order)
	}
	order.ID = 1
	order.Status = model.OrderStatusPending
	return order, nil
}

// Order returns a predefined order snapshot.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil
}

// OrderEvents returns a predefined lifecycle log.
func (s OrderFacadeStub) OrderEvents(ctx context.Context, orderID int64) ([]model.Event, error) {
	if s.EventsFn != nil {
		return s.EventsFn(ctx, orderID)
	}
	return []model.Event{{ID: 1, AggregateType: model.AggregateOrder, AggregateID: orderID, Type: model.EventOrderCreated, CreatedAt: time.Unix(0, 0)}}, nil
}

// SubmitOrderTransition executes configured transition handler.
func (s OrderFacadeStub) SubmitOrderTransition(ctx context.Context, orderID int64, action transition.Action, actor model.Actor, payload usecase.OrderTransitionPayload) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, action, actor, payload)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusConfirmed}, nil
}

// Review executes configured review handler.
func (s OrderFacadeStub) Review(ctx context.Context, orderID, productID int64, actor model.Actor, rating int, content string) error {
	if s.ReviewFn != nil {
		return s.ReviewFn(ctx, orderID, productID, actor, rating, content)
	}
	return nil
}

// MilestoneFacadeStub simulates project and milestone operations.
type MilestoneFacadeStub struct {
	CreateProjectFn   func(context.Context, *model.Project) (*model.Project, error)
	ProjectFn         func(context.Context, int64) (*model.Project, error)
	CreateMilestoneFn func(context.Context, *model.Milestone) (*model.Milestone, error)
	MilestoneFn       func(context.Context, int64) (*model.Milestone, error)
	AdvanceFn         func(context.Context, int64, transition.Action, model.Actor, usecase.MilestoneTransitionPayload) (*model.Milestone, error)
}

// CreateProject delegates to provided function or echoes the project back.
func (s MilestoneFacadeStub) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	if s.CreateProjectFn != nil {
		return s.CreateProjectFn(ctx, project)
	}
	project.ID = 1
	project.BudgetRemaining = project.BudgetTotal
	return project, nil
}

// Project returns a predefined project snapshot.
func (s MilestoneFacadeStub) Project(ctx context.Context, projectID int64) (*model.Project, error) {
	if s.ProjectFn != nil {
		return s.ProjectFn(ctx, projectID)
	}
	return &model.Project{ID: projectID, BudgetTotal: 1000, BudgetRemaining: 1000}, nil
}

// CreateMilestone delegates to provided function or echoes the milestone back.
func (s MilestoneFacadeStub) CreateMilestone(ctx context.Context, milestone *model.Milestone) (*model.Milestone, error) {
	if s.CreateMilestoneFn != nil {
		return s.CreateMilestoneFn(ctx, milestone)
	}
	milestone.ID = 1
	milestone.Status = model.MilestoneStatusPending
	return milestone, nil
}

// Milestone returns a predefined milestone snapshot.
func (s MilestoneFacadeStub) Milestone(ctx context.Context, milestoneID int64) (*model.Milestone, error) {
	if s.MilestoneFn != nil {
		return s.MilestoneFn(ctx, milestoneID)
	}
	return &model.Milestone{ID: milestoneID, Status: model.MilestoneStatusPending}, nil
}

// AdvanceMilestone executes configured transition handler.
func (s MilestoneFacadeStub) AdvanceMilestone(ctx context.Context, milestoneID int64, action transition.Action, actor model.Actor, payload usecase.MilestoneTransitionPayload) (*model.Milestone, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, milestoneID, action, actor, payload)
	}
	return &model.Milestone{ID: milestoneID, Status: model.MilestoneStatusInProgress}, nil
}

// RequestFacadeStub simulates the reason-bearing request workflow.
type RequestFacadeStub struct {
	SubmitFn func(context.Context, transition.EntityType, int64, usecase.RequestKind, model.Actor, string) (*usecase.RequestResult, error)
}

// SubmitRequest executes configured handler or returns a cancelled order.
func (s RequestFacadeStub) SubmitRequest(ctx context.Context, entity transition.EntityType, entityID int64, kind usecase.RequestKind, actor model.Actor, reason string) (*usecase.RequestResult, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, entity, entityID, kind, actor, reason)
	}
	return &usecase.RequestResult{Order: &model.Order{ID: entityID, Status: model.OrderStatusCancelled}}, nil
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Actor   model.Actor
	Err     error
	ParseFn func(string) (model.Actor, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Actor{}, s.Err
	}
	return s.Actor, nil
}

// FulfillmentFacadeStub aggregates facade dependencies for HTTP layer tests.
type FulfillmentFacadeStub struct {
	OrderFacadeStub
	MilestoneFacadeStub
	RequestFacadeStub
}
