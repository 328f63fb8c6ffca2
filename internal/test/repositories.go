package test

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/repository"
)

// OrderRepositoryStub keeps order aggregates in memory and mimics the
// storage layer's optimistic concurrency semantics.
type OrderRepositoryStub struct {
	Orders  map[int64]*model.Order
	Markers map[string]struct{}
	Events  []model.Event
	Next    int64
	Err     error

	ApplyFn func(context.Context, repository.OrderTransition) (*model.Order, error)
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders:  make(map[int64]*model.Order),
		Markers: make(map[string]struct{}),
		Next:    1,
	}
}

// Create stores the order with a fresh id and version 1.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := cloneOrder(order)
	stored.ID = s.Next
	s.Next++
	stored.Version = 1
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	for i := range stored.Items {
		stored.Items[i].OrderID = stored.ID
	}
	s.Orders[stored.ID] = stored
	return cloneOrder(stored), nil
}

// GetByID returns a copy of the stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(order), nil
}

// ApplyTransition mutates the aggregate all-or-nothing, rejecting
// version mismatches the way the real storage does.
func (s *OrderRepositoryStub) ApplyTransition(ctx context.Context, change repository.OrderTransition) (*model.Order, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, change)
	}
	order, ok := s.Orders[change.OrderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Version != change.ExpectedVersion || order.Status != change.From {
		return nil, domainErrors.ErrConcurrencyConflict
	}
	if change.Settle != nil {
		if err := change.Settle(ctx); err != nil {
			return nil, err
		}
	}
	order.Status = change.To
	if change.TrackingNumber != nil {
		order.TrackingNumber = change.TrackingNumber
	}
	if change.EstimatedDelivery != nil {
		order.EstimatedDelivery = change.EstimatedDelivery
	}
	if change.StampActualDelivery {
		now := time.Now().UTC()
		order.ActualDelivery = &now
	}
	if change.CancellationReason != nil {
		order.CancellationReason = change.CancellationReason
	}
	if change.ReturnReason != nil {
		order.ReturnReason = change.ReturnReason
	}
	if change.PaymentStatus != nil {
		order.PaymentStatus = *change.PaymentStatus
	}
	order.Version++
	order.UpdatedAt = time.Now().UTC()
	s.appendEvent(change.Event)
	return cloneOrder(order), nil
}

// AddReviewMarker records the (product, buyer) pair, denying
// duplicates. The store callback runs before the marker is kept,
// mirroring the storage layer's rollback on failure.
func (s *OrderRepositoryStub) AddReviewMarker(ctx context.Context, productID, buyerID int64, event model.Event, store func(ctx context.Context) error) error {
	if s.Markers == nil {
		s.Markers = make(map[string]struct{})
	}
	key := fmt.Sprintf("%d:%d", productID, buyerID)
	if _, exists := s.Markers[key]; exists {
		return domainErrors.ErrDuplicateReview
	}
	if store != nil {
		if err := store(ctx); err != nil {
			return err
		}
	}
	s.Markers[key] = struct{}{}
	s.appendEvent(event)
	return nil
}

func (s *OrderRepositoryStub) appendEvent(event model.Event) {
	event.ID = int64(len(s.Events) + 1)
	event.CreatedAt = time.Now().UTC()
	s.Events = append(s.Events, event)
}

func cloneOrder(order *model.Order) *model.Order {
	copied := *order
	copied.Items = append([]model.OrderItem(nil), order.Items...)
	return &copied
}

// MilestoneRepositoryStub keeps milestone and project aggregates in
// memory; Release mirrors the storage layer's atomic escrow movement.
type MilestoneRepositoryStub struct {
	Projects      map[int64]*model.Project
	Milestones    map[int64]*model.Milestone
	Events        []model.Event
	NextProject   int64
	NextMilestone int64
	Err           error
}

// NewMilestoneRepositoryStub constructs stub repository with initialized maps.
func NewMilestoneRepositoryStub() *MilestoneRepositoryStub {
	return &MilestoneRepositoryStub{
		Projects:      make(map[int64]*model.Project),
		Milestones:    make(map[int64]*model.Milestone),
		NextProject:   1,
		NextMilestone: 1,
	}
}

// CreateProject stores the project with a fresh id.
func (s *MilestoneRepositoryStub) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *project
	stored.ID = s.NextProject
	s.NextProject++
	stored.Version = 1
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	s.Projects[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetProject returns a copy of the stored project or not found.
func (s *MilestoneRepositoryStub) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	project, ok := s.Projects[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	result := *project
	return &result, nil
}

// Create stores the milestone with a fresh id.
func (s *MilestoneRepositoryStub) Create(ctx context.Context, milestone *model.Milestone) (*model.Milestone, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := cloneMilestone(milestone)
	stored.ID = s.NextMilestone
	s.NextMilestone++
	stored.Version = 1
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	s.Milestones[stored.ID] = stored
	return cloneMilestone(stored), nil
}

// GetByID returns a copy of the stored milestone or not found.
func (s *MilestoneRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	milestone, ok := s.Milestones[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneMilestone(milestone), nil
}

// ApplyTransition mutates milestone status without touching the ledger.
func (s *MilestoneRepositoryStub) ApplyTransition(ctx context.Context, change repository.MilestoneTransition) (*model.Milestone, error) {
	milestone, ok := s.Milestones[change.MilestoneID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if milestone.Version != change.ExpectedVersion || milestone.Status != change.From {
		return nil, domainErrors.ErrConcurrencyConflict
	}
	milestone.Status = change.To
	if change.Deliverables != nil {
		milestone.Deliverables = append([]model.Deliverable(nil), change.Deliverables...)
	}
	if change.ClientComment != nil {
		milestone.ClientComment = change.ClientComment
	}
	milestone.Version++
	milestone.UpdatedAt = time.Now().UTC()
	s.appendEvent(change.Event)
	return cloneMilestone(milestone), nil
}

// Release atomically approves the milestone and moves the escrowed
// amount from remaining to paid on the owning project.
func (s *MilestoneRepositoryStub) Release(ctx context.Context, change repository.MilestoneRelease) (*model.Milestone, error) {
	milestone, ok := s.Milestones[change.MilestoneID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if milestone.Version != change.ExpectedVersion {
		return nil, domainErrors.ErrConcurrencyConflict
	}
	if milestone.Released {
		return nil, domainErrors.ErrAlreadyApproved
	}
	project, ok := s.Projects[milestone.ProjectID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if project.BudgetRemaining < milestone.Amount {
		return nil, domainErrors.ErrInsufficientFunds
	}
	if change.Capture != nil {
		if err := change.Capture(ctx, milestone.Amount); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	milestone.Status = model.MilestoneStatusApproved
	milestone.Released = true
	milestone.ReleaseDate = &now
	milestone.ClientApproval = true
	milestone.Version++
	milestone.UpdatedAt = now
	project.BudgetPaid += milestone.Amount
	project.BudgetRemaining -= milestone.Amount
	project.Version++
	project.UpdatedAt = now
	s.appendEvent(change.Event)
	return cloneMilestone(milestone), nil
}

func (s *MilestoneRepositoryStub) appendEvent(event model.Event) {
	event.ID = int64(len(s.Events) + 1)
	event.CreatedAt = time.Now().UTC()
	s.Events = append(s.Events, event)
}

func cloneMilestone(milestone *model.Milestone) *model.Milestone {
	copied := *milestone
	copied.Deliverables = append([]model.Deliverable(nil), milestone.Deliverables...)
	return &copied
}

// EventRepositoryStub stores lifecycle events in memory.
type EventRepositoryStub struct {
	Events     []model.Event
	AppendErr  error
	Dispatched []int64
}

// Append assigns an id and stores the event.
func (s *EventRepositoryStub) Append(ctx context.Context, event model.Event) (*model.Event, error) {
	if s.AppendErr != nil {
		return nil, s.AppendErr
	}
	event.ID = int64(len(s.Events) + 1)
	event.CreatedAt = time.Now().UTC()
	s.Events = append(s.Events, event)
	stored := event
	return &stored, nil
}

// ListByAggregate filters stored events by aggregate.
func (s *EventRepositoryStub) ListByAggregate(ctx context.Context, aggregate model.AggregateType, aggregateID int64) ([]model.Event, error) {
	var result []model.Event
	for _, e := range s.Events {
		if e.AggregateType == aggregate && e.AggregateID == aggregateID {
			result = append(result, e)
		}
	}
	return result, nil
}

// SelectPendingBatch returns events not yet dispatched.
func (s *EventRepositoryStub) SelectPendingBatch(ctx context.Context, limit int) ([]model.Event, error) {
	var result []model.Event
	for _, e := range s.Events {
		if e.DispatchedAt == nil {
			result = append(result, e)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// MarkDispatched stamps the dispatch time on the event.
func (s *EventRepositoryStub) MarkDispatched(ctx context.Context, eventID int64) error {
	for i := range s.Events {
		if s.Events[i].ID == eventID {
			now := time.Now().UTC()
			s.Events[i].DispatchedAt = &now
			s.Dispatched = append(s.Dispatched, eventID)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}
