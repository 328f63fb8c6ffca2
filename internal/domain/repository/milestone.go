package repository

import (
	"context"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// MilestoneTransition describes a status-only milestone mutation
// (start, submit, reject). It never touches the escrow ledger.
type MilestoneTransition struct {
	MilestoneID     int64
	ExpectedVersion int64
	From            model.MilestoneStatus
	To              model.MilestoneStatus

	// Deliverables replaces the artifact slots on submit.
	Deliverables []model.Deliverable
	// ClientComment is recorded on reject for the freelancer.
	ClientComment *string

	Event model.Event
}

// MilestoneRelease describes the approve transition: status change,
// released flag, release date, client approval, and the parent
// project's paid/remaining adjustment commit together or not at all.
type MilestoneRelease struct {
	MilestoneID     int64
	ExpectedVersion int64

	Event model.Event
	// Capture settles the released amount at the payment gateway inside
	// the same transaction; an error aborts the release entirely.
	Capture func(ctx context.Context, amount int64) error
}

// MilestoneRepository describes persistence operations with milestone
// aggregates and their owning projects.
type MilestoneRepository interface {
	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, milestone *model.Milestone) (*model.Milestone, error)
	GetByID(ctx context.Context, id int64) (*model.Milestone, error)
	ApplyTransition(ctx context.Context, change MilestoneTransition) (*model.Milestone, error)
	Release(ctx context.Context, change MilestoneRelease) (*model.Milestone, error)
}
