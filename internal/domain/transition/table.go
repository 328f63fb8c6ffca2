package transition

import (
	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// EntityType selects which state machine a rule belongs to.
type EntityType string

const (
	EntityOrder     EntityType = "order"
	EntityMilestone EntityType = "milestone"
)

// Action is a named transition request against an aggregate.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionProcess Action = "process"
	ActionShip    Action = "ship"
	ActionDeliver Action = "deliver"
	ActionCancel  Action = "cancel"
	ActionReturn  Action = "return"
	// ActionReview does not change order state; it only gates review
	// submission on a completed delivery.
	ActionReview Action = "review"

	ActionStart   Action = "start"
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Rule describes one legal transition: the states it applies from, the
// resulting state, and the roles allowed to trigger it.
type Rule struct {
	From           []string
	To             string
	Roles          []model.Role
	RequiresReason bool
}

var table = map[EntityType]map[Action]Rule{
	EntityOrder: {
		ActionConfirm: {
			From:  []string{string(model.OrderStatusPending)},
			To:    string(model.OrderStatusConfirmed),
			Roles: []model.Role{model.RoleSeller, model.RoleSystem},
		},
		ActionProcess: {
			From:  []string{string(model.OrderStatusConfirmed)},
			To:    string(model.OrderStatusProcessing),
			Roles: []model.Role{model.RoleSeller},
		},
		ActionShip: {
			From:  []string{string(model.OrderStatusProcessing)},
			To:    string(model.OrderStatusShipped),
			Roles: []model.Role{model.RoleSeller},
		},
		ActionDeliver: {
			From:  []string{string(model.OrderStatusShipped)},
			To:    string(model.OrderStatusDelivered),
			Roles: []model.Role{model.RoleSeller, model.RoleSystem},
		},
		// Cancellation is only legal before work starts.
		ActionCancel: {
			From:           []string{string(model.OrderStatusPending), string(model.OrderStatusConfirmed)},
			To:             string(model.OrderStatusCancelled),
			Roles:          []model.Role{model.RoleBuyer},
			RequiresReason: true,
		},
		// A return is defined only against a completed delivery.
		ActionReturn: {
			From:           []string{string(model.OrderStatusDelivered)},
			To:             string(model.OrderStatusReturned),
			Roles:          []model.Role{model.RoleBuyer},
			RequiresReason: true,
		},
		ActionReview: {
			From:  []string{string(model.OrderStatusDelivered)},
			To:    string(model.OrderStatusDelivered),
			Roles: []model.Role{model.RoleBuyer},
		},
	},
	EntityMilestone: {
		ActionStart: {
			From:  []string{string(model.MilestoneStatusPending)},
			To:    string(model.MilestoneStatusInProgress),
			Roles: []model.Role{model.RoleFreelancer},
		},
		ActionSubmit: {
			From:  []string{string(model.MilestoneStatusInProgress)},
			To:    string(model.MilestoneStatusCompleted),
			Roles: []model.Role{model.RoleFreelancer},
		},
		ActionApprove: {
			From:  []string{string(model.MilestoneStatusCompleted)},
			To:    string(model.MilestoneStatusApproved),
			Roles: []model.Role{model.RoleClient},
		},
		ActionReject: {
			From:  []string{string(model.MilestoneStatusCompleted)},
			To:    string(model.MilestoneStatusInProgress),
			Roles: []model.Role{model.RoleClient},
		},
	},
}

// Decide is the single legality oracle for all transitions. It is a
// pure function over the table: given the aggregate's current state,
// the requested action, and the actor role it returns the target state
// or a TransitionError wrapping ErrInvalidTransition/ErrForbidden.
func Decide(entity EntityType, from string, action Action, role model.Role) (string, error) {
	rule, ok := table[entity][action]
	if !ok || !contains(rule.From, from) {
		return "", &domainErrors.TransitionError{
			Entity: string(entity),
			From:   from,
			Action: string(action),
			Role:   string(role),
			Reason: domainErrors.ErrInvalidTransition,
		}
	}
	if !containsRole(rule.Roles, role) {
		return "", &domainErrors.TransitionError{
			Entity: string(entity),
			From:   from,
			Action: string(action),
			Role:   string(role),
			Reason: domainErrors.ErrForbidden,
		}
	}
	return rule.To, nil
}

// Can reports whether the transition would be allowed. Read-side
// affordance only: the mutating path re-checks Decide inside the
// transaction.
func Can(entity EntityType, from string, action Action, role model.Role) bool {
	_, err := Decide(entity, from, action, role)
	return err == nil
}

// RequiresReason reports whether the action must carry a non-empty
// free-text reason.
func RequiresReason(entity EntityType, action Action) bool {
	rule, ok := table[entity][action]
	return ok && rule.RequiresReason
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsRole(roles []model.Role, r model.Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}
