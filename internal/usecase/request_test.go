package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
	testhelpers "github.com/ordermesh/fulfillment/internal/test"
)

type requestFixture struct {
	orderFixture
	milestones *testhelpers.MilestoneRepositoryStub
	uc         *RequestUseCase
}

func newRequestFixture() *requestFixture {
	f := &requestFixture{
		orderFixture: *newOrderFixture(),
		milestones:   testhelpers.NewMilestoneRepositoryStub(),
	}
	milestoneUC := NewMilestoneUseCase(f.milestones, f.gateway, discardLogger())
	f.uc = NewRequestUseCase(f.orderFixture.uc, milestoneUC, f.events)
	return f
}

func TestRequestReasonRequired(t *testing.T) {
	f := newRequestFixture()
	order := f.createOrder(t)
	buyer := model.Actor{ID: buyerID, Role: model.RoleBuyer}

	for _, kind := range []RequestKind{RequestCancel, RequestReturn, RequestDispute} {
		for _, reason := range []string{"", "   "} {
			_, err := f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, kind, buyer, reason)
			if !errors.Is(err, domainErrors.ErrInvalidArgument) {
				t.Fatalf("%s with reason %q: expected invalid argument, got %v", kind, reason, err)
			}
		}
	}

	snapshot, err := f.orderFixture.uc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snapshot.Status != model.OrderStatusPending || snapshot.Version != order.Version {
		t.Fatalf("expected aggregate untouched, got status %s version %d", snapshot.Status, snapshot.Version)
	}
}

func TestRequestCancelStampsAuditTrail(t *testing.T) {
	f := newRequestFixture()
	order := f.createOrder(t)
	buyer := model.Actor{ID: buyerID, Role: model.RoleBuyer}

	result, err := f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestCancel, buyer, "  changed my mind  ")
	if err != nil {
		t.Fatalf("cancel request: %v", err)
	}
	if result.Order == nil || result.Order.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled order in result, got %+v", result)
	}
	if result.Order.CancellationReason == nil || *result.Order.CancellationReason != "changed my mind" {
		t.Fatalf("expected trimmed reason recorded, got %v", result.Order.CancellationReason)
	}

	if len(f.orders.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(f.orders.Events))
	}
	event := f.orders.Events[0]
	if event.Type != model.EventOrderCancelled {
		t.Fatalf("expected cancelled event, got %s", event.Type)
	}
	var payload struct {
		Reason      string `json:"reason"`
		RequestedBy int64  `json:"requested_by"`
		RequestedAt string `json:"requested_at"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Reason != "changed my mind" || payload.RequestedBy != buyerID || payload.RequestedAt == "" {
		t.Fatalf("expected audit trail in payload, got %+v", payload)
	}
}

func TestRequestReturnDelegatesToOrderLifecycle(t *testing.T) {
	f := newRequestFixture()
	order := f.createOrder(t)
	buyer := model.Actor{ID: buyerID, Role: model.RoleBuyer}
	f.advanceTo(t, order.ID, model.OrderStatusDelivered)

	result, err := f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestReturn, buyer, "arrived damaged")
	if err != nil {
		t.Fatalf("return request: %v", err)
	}
	if result.Order.Status != model.OrderStatusReturned {
		t.Fatalf("expected returned, got %s", result.Order.Status)
	}
	if result.Order.PaymentStatus != model.PaymentStatusRefunded {
		t.Fatalf("expected refund on return, got %s", result.Order.PaymentStatus)
	}
	if len(f.gateway.Refunds) != 1 || f.gateway.Refunds[0].Amount != 4000 {
		t.Fatalf("expected one refund of 4000, got %+v", f.gateway.Refunds)
	}

	// The decision table still applies behind the workflow.
	_, err = f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestReturn, buyer, "again")
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on second return, got %v", err)
	}
}

func TestRequestCancelReturnApplyToOrdersOnly(t *testing.T) {
	f := newRequestFixture()
	buyer := model.Actor{ID: buyerID, Role: model.RoleBuyer}

	for _, kind := range []RequestKind{RequestCancel, RequestReturn} {
		_, err := f.uc.Submit(context.Background(), transition.EntityMilestone, 1, kind, buyer, "does not matter")
		if !errors.Is(err, domainErrors.ErrInvalidArgument) {
			t.Fatalf("%s on milestone: expected invalid argument, got %v", kind, err)
		}
	}
}

func TestRequestDisputeOnOrderAppendsEventOnly(t *testing.T) {
	f := newRequestFixture()
	order := f.createOrder(t)
	buyer := model.Actor{ID: buyerID, Role: model.RoleBuyer}

	result, err := f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestDispute, buyer, "item does not match the listing")
	if err != nil {
		t.Fatalf("dispute request: %v", err)
	}
	if result.Order == nil || result.Order.Status != model.OrderStatusPending {
		t.Fatalf("expected order state untouched, got %+v", result.Order)
	}

	if len(f.events.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(f.events.Events))
	}
	event := f.events.Events[0]
	if event.Type != model.EventDisputeOpened || event.AggregateType != model.AggregateOrder || event.AggregateID != order.ID {
		t.Fatalf("unexpected dispute event %+v", event)
	}

	_, err = f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestDispute, model.Actor{ID: 99, Role: model.RoleBuyer}, "not mine")
	if !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for other buyer, got %v", err)
	}
}

func TestRequestDisputeOnOrderChecksSellerMembership(t *testing.T) {
	f := newRequestFixture()
	order := f.createOrder(t)

	_, err := f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestDispute, model.Actor{ID: 999, Role: model.RoleSeller}, "not my sale")
	if !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for uninvolved seller, got %v", err)
	}
	if len(f.events.Events) != 0 {
		t.Fatalf("expected no dispute event, got %d", len(f.events.Events))
	}

	// A seller with items on the order may dispute it.
	if _, err := f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestDispute, model.Actor{ID: sellerID, Role: model.RoleSeller}, "buyer claims non-delivery"); err != nil {
		t.Fatalf("dispute by item seller: %v", err)
	}
	if len(f.events.Events) != 1 || f.events.Events[0].Type != model.EventDisputeOpened {
		t.Fatalf("expected one dispute event, got %+v", f.events.Events)
	}
}

func TestRequestDisputeOnMilestoneChecksOwnership(t *testing.T) {
	f := newRequestFixture()
	project, err := NewMilestoneUseCase(f.milestones, f.gateway, discardLogger()).CreateProject(context.Background(), &model.Project{
		ClientID:     clientID,
		FreelancerID: freelancerID,
		Title:        "site redesign",
		BudgetTotal:  3000,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	milestone, err := f.milestones.Create(context.Background(), &model.Milestone{
		ProjectID:    project.ID,
		Title:        "homepage",
		Amount:       1000,
		Status:       model.MilestoneStatusPending,
		Deliverables: []model.Deliverable{{Name: "mockups"}},
	})
	if err != nil {
		t.Fatalf("create milestone: %v", err)
	}

	freelancer := model.Actor{ID: freelancerID, Role: model.RoleFreelancer}
	result, err := f.uc.Submit(context.Background(), transition.EntityMilestone, milestone.ID, RequestDispute, freelancer, "approval is overdue")
	if err != nil {
		t.Fatalf("dispute request: %v", err)
	}
	if result.Milestone == nil || result.Milestone.ID != milestone.ID {
		t.Fatalf("expected milestone snapshot in result, got %+v", result)
	}
	if len(f.events.Events) != 1 || f.events.Events[0].AggregateType != model.AggregateMilestone {
		t.Fatalf("expected one milestone dispute event, got %+v", f.events.Events)
	}

	_, err = f.uc.Submit(context.Background(), transition.EntityMilestone, milestone.ID, RequestDispute, model.Actor{ID: 77, Role: model.RoleFreelancer}, "not my project")
	if !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for other freelancer, got %v", err)
	}
}

func TestRequestUnknownKind(t *testing.T) {
	f := newRequestFixture()
	order := f.createOrder(t)
	buyer := model.Actor{ID: buyerID, Role: model.RoleBuyer}

	_, err := f.uc.Submit(context.Background(), transition.EntityOrder, order.ID, RequestKind("escalate"), buyer, "because")
	if !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
