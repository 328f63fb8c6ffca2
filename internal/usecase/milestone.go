package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/repository"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
)

// MilestoneTransitionPayload carries optional data accompanying a
// milestone transition request.
type MilestoneTransitionPayload struct {
	// Artifacts maps deliverable names to artifact references on submit.
	Artifacts map[string]string
	// Comment is recorded for the freelancer on reject.
	Comment string
}

var milestoneEventTypes = map[transition.Action]string{
	transition.ActionStart:   model.EventMilestoneStarted,
	transition.ActionSubmit:  model.EventMilestoneSubmitted,
	transition.ActionApprove: model.EventMilestonePaymentReleased,
	transition.ActionReject:  model.EventMilestoneRejected,
}

// MilestoneUseCase owns the milestone aggregate and the project escrow
// ledger. Approve is the only action with a financial side effect: the
// status flip, the release flag, and the budget movement commit as a
// single transaction.
type MilestoneUseCase struct {
	milestones repository.MilestoneRepository
	gateway    PaymentGateway
	logger     *slog.Logger
}

// NewMilestoneUseCase constructs MilestoneUseCase.
func NewMilestoneUseCase(milestones repository.MilestoneRepository, gateway PaymentGateway, logger *slog.Logger) *MilestoneUseCase {
	return &MilestoneUseCase{milestones: milestones, gateway: gateway, logger: logger}
}

// CreateProject registers a project with its escrow budget fully on
// the remaining side.
func (u *MilestoneUseCase) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	if project.ClientID <= 0 || project.FreelancerID <= 0 {
		return nil, fmt.Errorf("%w: client and freelancer are required", domainErrors.ErrInvalidArgument)
	}
	if project.BudgetTotal < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", domainErrors.ErrInvalidArgument)
	}
	project.BudgetPaid = 0
	project.BudgetRemaining = project.BudgetTotal
	if err := ValidateBudget(project); err != nil {
		return nil, err
	}
	return u.milestones.CreateProject(ctx, project)
}

// CreateMilestone registers a deliverable unit inside a project.
func (u *MilestoneUseCase) CreateMilestone(ctx context.Context, milestone *model.Milestone) (*model.Milestone, error) {
	if milestone.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", domainErrors.ErrInvalidArgument)
	}
	if len(milestone.Deliverables) == 0 {
		return nil, fmt.Errorf("%w: milestone needs at least one deliverable", domainErrors.ErrInvalidArgument)
	}
	seen := make(map[string]struct{}, len(milestone.Deliverables))
	for i := range milestone.Deliverables {
		name := milestone.Deliverables[i].Name
		if name == "" {
			return nil, fmt.Errorf("%w: deliverable name must not be empty", domainErrors.ErrInvalidArgument)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate deliverable %q", domainErrors.ErrInvalidArgument, name)
		}
		seen[name] = struct{}{}
		milestone.Deliverables[i].Artifact = ""
	}
	if _, err := u.milestones.GetProject(ctx, milestone.ProjectID); err != nil {
		return nil, err
	}
	milestone.Status = model.MilestoneStatusPending
	milestone.Released = false
	milestone.ClientApproval = false
	return u.milestones.Create(ctx, milestone)
}

// Get returns the last committed milestone snapshot.
func (u *MilestoneUseCase) Get(ctx context.Context, milestoneID int64) (*model.Milestone, error) {
	return u.milestones.GetByID(ctx, milestoneID)
}

// GetProject returns the last committed project snapshot.
func (u *MilestoneUseCase) GetProject(ctx context.Context, projectID int64) (*model.Project, error) {
	return u.milestones.GetProject(ctx, projectID)
}

// Advance applies a milestone transition. Resubmitting approve for an
// already approved milestone returns ErrAlreadyApproved and never moves
// money twice.
func (u *MilestoneUseCase) Advance(ctx context.Context, milestoneID int64, action transition.Action, actor model.Actor, payload MilestoneTransitionPayload) (*model.Milestone, error) {
	milestone, err := u.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	project, err := u.milestones.GetProject(ctx, milestone.ProjectID)
	if err != nil {
		return nil, err
	}

	if action == transition.ActionApprove && milestone.Status == model.MilestoneStatusApproved {
		return nil, domainErrors.ErrAlreadyApproved
	}

	to, err := transition.Decide(transition.EntityMilestone, string(milestone.Status), action, actor.Role)
	if err != nil {
		return nil, err
	}
	if err := u.checkOwnership(project, actor); err != nil {
		return nil, err
	}

	record := transitionRecord{
		From:      string(milestone.Status),
		To:        to,
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
		At:        time.Now().UTC(),
	}
	event := newEvent(model.AggregateMilestone, milestone.ID, milestoneEventTypes[action], actor, record)

	if action == transition.ActionApprove {
		if err := ValidateRelease(project, milestone); err != nil {
			u.logger.Error("escrow release rejected",
				slog.Int64("milestone_id", milestone.ID),
				slog.Int64("project_id", project.ID),
				slog.String("error", err.Error()))
			return nil, err
		}
		reference := fmt.Sprintf("milestone-%d", milestone.ID)
		return u.milestones.Release(ctx, repository.MilestoneRelease{
			MilestoneID:     milestone.ID,
			ExpectedVersion: milestone.Version,
			Event:           event,
			Capture: func(ctx context.Context, amount int64) error {
				return u.gateway.Capture(ctx, reference, amount)
			},
		})
	}

	change := repository.MilestoneTransition{
		MilestoneID:     milestone.ID,
		ExpectedVersion: milestone.Version,
		From:            milestone.Status,
		To:              model.MilestoneStatus(to),
		Event:           event,
	}

	switch action {
	case transition.ActionSubmit:
		deliverables, err := applyArtifacts(milestone.Deliverables, payload.Artifacts)
		if err != nil {
			return nil, err
		}
		change.Deliverables = deliverables
	case transition.ActionReject:
		if payload.Comment != "" {
			comment := payload.Comment
			change.ClientComment = &comment
		}
	}

	return u.milestones.ApplyTransition(ctx, change)
}

func (u *MilestoneUseCase) checkOwnership(project *model.Project, actor model.Actor) error {
	switch actor.Role {
	case model.RoleClient:
		if actor.ID != project.ClientID {
			return fmt.Errorf("%w: project belongs to another client", domainErrors.ErrForbidden)
		}
	case model.RoleFreelancer:
		if actor.ID != project.FreelancerID {
			return fmt.Errorf("%w: project is assigned to another freelancer", domainErrors.ErrForbidden)
		}
	}
	return nil
}

// applyArtifacts fills deliverable slots and requires every slot to be
// populated before submission.
func applyArtifacts(deliverables []model.Deliverable, artifacts map[string]string) ([]model.Deliverable, error) {
	updated := make([]model.Deliverable, len(deliverables))
	copy(updated, deliverables)

	byName := make(map[string]int, len(updated))
	for i, d := range updated {
		byName[d.Name] = i
	}
	for name, artifact := range artifacts {
		i, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown deliverable %q", domainErrors.ErrInvalidArgument, name)
		}
		if artifact == "" {
			return nil, fmt.Errorf("%w: artifact for %q must not be empty", domainErrors.ErrInvalidArgument, name)
		}
		updated[i].Artifact = artifact
	}
	for _, d := range updated {
		if d.Artifact == "" {
			return nil, fmt.Errorf("%w: deliverable %q has no artifact", domainErrors.ErrInvalidArgument, d.Name)
		}
	}
	return updated, nil
}
