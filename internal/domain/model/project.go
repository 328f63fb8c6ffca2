package model

import "time"

// Project owns the escrow budget for its milestones. The identity
// BudgetTotal == BudgetPaid + BudgetRemaining holds after every
// committed mutation; BudgetPaid grows exactly once per released
// milestone, by that milestone's amount.
type Project struct {
	ID              int64
	ClientID        int64
	FreelancerID    int64
	Title           string
	BudgetTotal     int64
	BudgetPaid      int64
	BudgetRemaining int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}
