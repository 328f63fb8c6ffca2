package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// ValidateReason trims and checks a free-text reason required by
// cancel/return/dispute workflows.
func ValidateReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", fmt.Errorf("%w: reason must not be empty", domainErrors.ErrInvalidArgument)
	}
	return trimmed, nil
}

// ValidateOrderLedger verifies the monetary identities of an order
// before a mutation is committed: item totals, the subtotal sum, and
// totalAmount = subtotal + shipping + tax - discount. A failure means a
// broken invariant, not bad input.
func ValidateOrderLedger(o *model.Order) error {
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d has non-positive quantity %d", domainErrors.ErrLedgerViolation, item.ProductID, item.Quantity)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("%w: item %d has negative unit price %d", domainErrors.ErrLedgerViolation, item.ProductID, item.UnitPrice)
		}
		if item.TotalPrice != item.Quantity*item.UnitPrice {
			return fmt.Errorf("%w: item %d total %d != %d*%d", domainErrors.ErrLedgerViolation, item.ProductID, item.TotalPrice, item.Quantity, item.UnitPrice)
		}
	}
	if o.Subtotal != o.ComputedSubtotal() {
		return fmt.Errorf("%w: subtotal %d != sum of items %d", domainErrors.ErrLedgerViolation, o.Subtotal, o.ComputedSubtotal())
	}
	if o.TotalAmount != o.ComputedTotal() {
		return fmt.Errorf("%w: total %d != %d+%d+%d-%d", domainErrors.ErrLedgerViolation, o.TotalAmount, o.Subtotal, o.ShippingCost, o.TaxAmount, o.DiscountAmount)
	}
	return nil
}

// ValidateBudget verifies budget conservation on a project.
func ValidateBudget(p *model.Project) error {
	if p.BudgetPaid < 0 || p.BudgetRemaining < 0 {
		return fmt.Errorf("%w: negative budget component paid=%d remaining=%d", domainErrors.ErrLedgerViolation, p.BudgetPaid, p.BudgetRemaining)
	}
	if p.BudgetTotal != p.BudgetPaid+p.BudgetRemaining {
		return fmt.Errorf("%w: budget total %d != paid %d + remaining %d", domainErrors.ErrLedgerViolation, p.BudgetTotal, p.BudgetPaid, p.BudgetRemaining)
	}
	return nil
}

// ValidateRelease checks that releasing the milestone's escrowed amount
// preserves the ledger: funds are released at most once and never
// beyond the project's remaining budget.
func ValidateRelease(p *model.Project, m *model.Milestone) error {
	if m.Released {
		return fmt.Errorf("%w: payment for milestone %d already released", domainErrors.ErrLedgerViolation, m.ID)
	}
	if m.Amount < 0 {
		return fmt.Errorf("%w: milestone %d has negative amount %d", domainErrors.ErrLedgerViolation, m.ID, m.Amount)
	}
	if p.BudgetRemaining < m.Amount {
		return domainErrors.ErrInsufficientFunds
	}
	return ValidateBudget(p)
}
