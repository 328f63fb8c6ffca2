package dto

import "time"

// CreateProjectRequest registers a freelance project with its escrow
// budget. The client identity comes from the actor token.
type CreateProjectRequest struct {
	FreelancerID int64  `json:"freelancer_id"`
	Title        string `json:"title"`
	BudgetTotal  int64  `json:"budget_total"`
}

// CreateMilestoneRequest registers a deliverable unit inside a project.
type CreateMilestoneRequest struct {
	ProjectID    int64    `json:"project_id"`
	Title        string   `json:"title"`
	Amount       int64    `json:"amount"`
	Deliverables []string `json:"deliverables"`
}

// MilestoneTransitionRequest describes a lifecycle action applied to a
// milestone. Artifacts accompany submit, Comment accompanies reject.
type MilestoneTransitionRequest struct {
	Action    string            `json:"action"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Comment   string            `json:"comment,omitempty"`
}

// DeliverableResponse mirrors a milestone deliverable slot.
type DeliverableResponse struct {
	Name     string `json:"name"`
	Artifact string `json:"artifact,omitempty"`
}

// MilestoneResponse is the committed milestone snapshot returned to clients.
type MilestoneResponse struct {
	ID             int64                 `json:"id"`
	ProjectID      int64                 `json:"project_id"`
	Title          string                `json:"title"`
	Status         string                `json:"status"`
	Amount         int64                 `json:"amount"`
	Released       bool                  `json:"released"`
	ReleaseDate    *time.Time            `json:"release_date,omitempty"`
	Deliverables   []DeliverableResponse `json:"deliverables"`
	ClientApproval bool                  `json:"client_approval"`
	ClientComment  *string               `json:"client_comment,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Version        int64                 `json:"version"`
}

// ProjectResponse is the committed project snapshot returned to clients.
type ProjectResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	FreelancerID    int64     `json:"freelancer_id"`
	Title           string    `json:"title"`
	BudgetTotal     int64     `json:"budget_total"`
	BudgetPaid      int64     `json:"budget_paid"`
	BudgetRemaining int64     `json:"budget_remaining"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int64     `json:"version"`
}
