package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
	testhelpers "github.com/ordermesh/fulfillment/internal/test"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

type facadeDeps struct {
	orders     *testhelpers.OrderRepositoryStub
	milestones *testhelpers.MilestoneRepositoryStub
	events     *testhelpers.EventRepositoryStub
	gateway    *testhelpers.GatewayStub
	notifier   *testhelpers.NotifierStub
}

func newFacade() (*FulfillmentFacade, *facadeDeps) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	deps := &facadeDeps{
		orders:     testhelpers.NewOrderRepositoryStub(),
		milestones: testhelpers.NewMilestoneRepositoryStub(),
		events:     &testhelpers.EventRepositoryStub{},
		gateway:    &testhelpers.GatewayStub{},
		notifier:   &testhelpers.NotifierStub{},
	}

	orderUC := usecase.NewOrderUseCase(deps.orders, deps.events, deps.gateway, &testhelpers.ReviewStoreStub{}, logger)
	milestoneUC := usecase.NewMilestoneUseCase(deps.milestones, deps.gateway, logger)
	requestUC := usecase.NewRequestUseCase(orderUC, milestoneUC, deps.events)
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (model.Actor, error) {
		return model.Actor{ID: 99, Role: model.RoleSeller}, nil
	}}

	facade := NewFulfillmentFacade(orderUC, milestoneUC, requestUC, deps.events, deps.notifier, strategy)
	return facade, deps
}

func TestFulfillmentFacadeParseToken(t *testing.T) {
	facade, _ := newFacade()
	actor, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if actor.ID != 99 || actor.Role != model.RoleSeller {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestFulfillmentFacadeOrders(t *testing.T) {
	facade, deps := newFacade()

	order, err := facade.CreateOrder(context.Background(), &model.Order{
		BuyerID: 1,
		Items:   []model.OrderItem{{ProductID: 2, SellerID: 3, Quantity: 2, UnitPrice: 500}},
	})
	if err != nil {
		t.Fatalf("create order returned error: %v", err)
	}
	if order.TotalAmount != 1000 {
		t.Fatalf("unexpected total: %d", order.TotalAmount)
	}

	loaded, err := facade.Order(context.Background(), order.ID)
	if err != nil || loaded.ID != order.ID {
		t.Fatalf("unexpected get result: %v err=%v", loaded, err)
	}

	confirmed, err := facade.SubmitOrderTransition(context.Background(), order.ID, transition.ActionConfirm,
		model.Actor{ID: 3, Role: model.RoleSeller}, usecase.OrderTransitionPayload{})
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if confirmed.Status != model.OrderStatusConfirmed {
		t.Fatalf("unexpected status: %s", confirmed.Status)
	}
	if len(deps.gateway.Captures) != 1 || deps.gateway.Captures[0].Amount != 1000 {
		t.Fatalf("expected capture of 1000, got %+v", deps.gateway.Captures)
	}

	if _, err := facade.OrderEvents(context.Background(), order.ID); err != nil {
		t.Fatalf("order events returned error: %v", err)
	}
}

func TestFulfillmentFacadeMilestones(t *testing.T) {
	facade, _ := newFacade()

	project, err := facade.CreateProject(context.Background(), &model.Project{ClientID: 30, FreelancerID: 40, BudgetTotal: 3000})
	if err != nil {
		t.Fatalf("create project returned error: %v", err)
	}
	if project.BudgetRemaining != 3000 {
		t.Fatalf("unexpected budget: %+v", project)
	}

	loadedProject, err := facade.Project(context.Background(), project.ID)
	if err != nil || loadedProject.ID != project.ID {
		t.Fatalf("unexpected project result: %v err=%v", loadedProject, err)
	}

	milestone, err := facade.CreateMilestone(context.Background(), &model.Milestone{
		ProjectID:    project.ID,
		Title:        "design",
		Amount:       1000,
		Deliverables: []model.Deliverable{{Name: "mockups"}},
	})
	if err != nil {
		t.Fatalf("create milestone returned error: %v", err)
	}

	loaded, err := facade.Milestone(context.Background(), milestone.ID)
	if err != nil || loaded.ID != milestone.ID {
		t.Fatalf("unexpected milestone result: %v err=%v", loaded, err)
	}

	started, err := facade.AdvanceMilestone(context.Background(), milestone.ID, transition.ActionStart,
		model.Actor{ID: 40, Role: model.RoleFreelancer}, usecase.MilestoneTransitionPayload{})
	if err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	if started.Status != model.MilestoneStatusInProgress {
		t.Fatalf("unexpected status: %s", started.Status)
	}
}

func TestFulfillmentFacadeRequests(t *testing.T) {
	facade, _ := newFacade()

	order, err := facade.CreateOrder(context.Background(), &model.Order{
		BuyerID: 1,
		Items:   []model.OrderItem{{ProductID: 2, SellerID: 3, Quantity: 1, UnitPrice: 700}},
	})
	if err != nil {
		t.Fatalf("create order returned error: %v", err)
	}

	result, err := facade.SubmitRequest(context.Background(), transition.EntityOrder, order.ID, usecase.RequestCancel,
		model.Actor{ID: 1, Role: model.RoleBuyer}, "ordered by mistake")
	if err != nil {
		t.Fatalf("cancel request returned error: %v", err)
	}
	if result.Order == nil || result.Order.Status != model.OrderStatusCancelled {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := facade.SubmitRequest(context.Background(), transition.EntityOrder, order.ID, usecase.RequestCancel,
		model.Actor{ID: 1, Role: model.RoleBuyer}, ""); !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for blank reason, got %v", err)
	}
}

func TestFulfillmentFacadeOutbox(t *testing.T) {
	facade, deps := newFacade()

	stored, err := deps.events.Append(context.Background(), model.Event{
		AggregateType: model.AggregateOrder,
		AggregateID:   1,
		Type:          model.EventOrderCreated,
	})
	if err != nil {
		t.Fatalf("append returned error: %v", err)
	}

	pending, err := facade.PendingEvents(context.Background(), 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("unexpected pending result: %v err=%v", pending, err)
	}

	if err := facade.Notify(context.Background(), pending[0]); err != nil {
		t.Fatalf("notify returned error: %v", err)
	}
	if deps.notifier.NotifiedCount() != 1 {
		t.Fatalf("expected one delivery, got %d", deps.notifier.NotifiedCount())
	}

	if err := facade.MarkDispatched(context.Background(), stored.ID); err != nil {
		t.Fatalf("mark dispatched returned error: %v", err)
	}
	pending, err = facade.PendingEvents(context.Background(), 10)
	if err != nil || len(pending) != 0 {
		t.Fatalf("expected no pending events, got %v err=%v", pending, err)
	}
}
