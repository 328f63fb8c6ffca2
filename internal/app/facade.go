package app

import (
	"context"

	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/repository"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
	pkgActor "github.com/ordermesh/fulfillment/internal/pkg/actor"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// EventNotifier delivers committed events to the external webhook.
type EventNotifier interface {
	Notify(ctx context.Context, event model.Event) error
}

// FulfillmentFacade aggregates the use cases behind a single surface
// consumed by the HTTP layer and the outbox dispatcher.
type FulfillmentFacade struct {
	orders     *usecase.OrderUseCase
	milestones *usecase.MilestoneUseCase
	requests   *usecase.RequestUseCase
	events     repository.EventRepository
	notifier   EventNotifier
	tokens     pkgActor.Strategy
}

func NewFulfillmentFacade(orders *usecase.OrderUseCase, milestones *usecase.MilestoneUseCase, requests *usecase.RequestUseCase, events repository.EventRepository, notifier EventNotifier, tokens pkgActor.Strategy) *FulfillmentFacade {
	return &FulfillmentFacade{orders: orders, milestones: milestones, requests: requests, events: events, notifier: notifier, tokens: tokens}
}

func (f *FulfillmentFacade) ParseToken(token string) (model.Actor, error) {
	return f.tokens.ParseToken(token)
}

func (f *FulfillmentFacade) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	return f.orders.Create(ctx, order)
}

func (f *FulfillmentFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *FulfillmentFacade) OrderEvents(ctx context.Context, orderID int64) ([]model.Event, error) {
	return f.orders.Events(ctx, orderID)
}

func (f *FulfillmentFacade) SubmitOrderTransition(ctx context.Context, orderID int64, action transition.Action, actor model.Actor, payload usecase.OrderTransitionPayload) (*model.Order, error) {
	return f.orders.Submit(ctx, orderID, action, actor, payload)
}

func (f *FulfillmentFacade) Review(ctx context.Context, orderID, productID int64, actor model.Actor, rating int, content string) error {
	return f.orders.Review(ctx, orderID, productID, actor, rating, content)
}

func (f *FulfillmentFacade) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	return f.milestones.CreateProject(ctx, project)
}

func (f *FulfillmentFacade) Project(ctx context.Context, projectID int64) (*model.Project, error) {
	return f.milestones.GetProject(ctx, projectID)
}

func (f *FulfillmentFacade) CreateMilestone(ctx context.Context, milestone *model.Milestone) (*model.Milestone, error) {
	return f.milestones.CreateMilestone(ctx, milestone)
}

func (f *FulfillmentFacade) Milestone(ctx context.Context, milestoneID int64) (*model.Milestone, error) {
	return f.milestones.Get(ctx, milestoneID)
}

func (f *FulfillmentFacade) AdvanceMilestone(ctx context.Context, milestoneID int64, action transition.Action, actor model.Actor, payload usecase.MilestoneTransitionPayload) (*model.Milestone, error) {
	return f.milestones.Advance(ctx, milestoneID, action, actor, payload)
}

func (f *FulfillmentFacade) SubmitRequest(ctx context.Context, entity transition.EntityType, entityID int64, kind usecase.RequestKind, actor model.Actor, reason string) (*usecase.RequestResult, error) {
	return f.requests.Submit(ctx, entity, entityID, kind, actor, reason)
}

func (f *FulfillmentFacade) PendingEvents(ctx context.Context, limit int) ([]model.Event, error) {
	return f.events.SelectPendingBatch(ctx, limit)
}

func (f *FulfillmentFacade) Notify(ctx context.Context, event model.Event) error {
	return f.notifier.Notify(ctx, event)
}

func (f *FulfillmentFacade) MarkDispatched(ctx context.Context, eventID int64) error {
	return f.events.MarkDispatched(ctx, eventID)
}
