package model

import "time"

// MilestoneStatus describes milestone delivery lifecycle.
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in-progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
	MilestoneStatusApproved   MilestoneStatus = "approved"
)

// Deliverable is a named artifact slot attached to a milestone. The
// artifact reference is filled by the freelancer before submission.
type Deliverable struct {
	Name     string `json:"name"`
	Artifact string `json:"artifact,omitempty"`
}

// Milestone is a deliverable unit inside a freelance project. Released
// is monotonic: once the escrowed amount moved to the freelancer it is
// never taken back, and ReleaseDate is always set alongside it.
type Milestone struct {
	ID             int64
	ProjectID      int64
	Title          string
	Status         MilestoneStatus
	Amount         int64
	Released       bool
	ReleaseDate    *time.Time
	Deliverables   []Deliverable
	ClientApproval bool
	ClientComment  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int64
}

// DeliverablesComplete reports whether every deliverable slot carries
// an artifact reference.
func (m *Milestone) DeliverablesComplete() bool {
	if len(m.Deliverables) == 0 {
		return false
	}
	for _, d := range m.Deliverables {
		if d.Artifact == "" {
			return false
		}
	}
	return true
}
