package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	testhelpers "github.com/ordermesh/fulfillment/internal/test"
)

func TestValidateReason(t *testing.T) {
	if _, err := ValidateReason("  \t "); !errors.Is(err, domainErrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for blank reason, got %v", err)
	}
	trimmed, err := ValidateReason("  arrived damaged ")
	if err != nil {
		t.Fatalf("validate reason: %v", err)
	}
	if trimmed != "arrived damaged" {
		t.Fatalf("expected trimmed reason, got %q", trimmed)
	}
}

func TestOrderLedgerIdentityHoldsForRandomOrders(t *testing.T) {
	for i := 0; i < 200; i++ {
		order := &model.Order{
			BuyerID:        buyerID,
			Items:          testhelpers.RandomOrderItems(6),
			ShippingCost:   testhelpers.RandomAmount(2000),
			TaxAmount:      testhelpers.RandomAmount(5000),
			DiscountAmount: testhelpers.RandomAmount(1000),
		}
		order.Subtotal = order.ComputedSubtotal()
		order.TotalAmount = order.ComputedTotal()

		if err := ValidateOrderLedger(order); err != nil {
			t.Fatalf("identity broken for generated order %d: %v", i, err)
		}
	}
}

func TestOrderLedgerDetectsDrift(t *testing.T) {
	base := func() *model.Order {
		order := &model.Order{
			BuyerID: buyerID,
			Items: []model.OrderItem{
				{ProductID: 1, SellerID: sellerID, Quantity: 2, UnitPrice: 1500, TotalPrice: 3000},
			},
			ShippingCost: 500,
			TaxAmount:    350,
		}
		order.Subtotal = order.ComputedSubtotal()
		order.TotalAmount = order.ComputedTotal()
		return order
	}

	cases := []struct {
		name   string
		mutate func(*model.Order)
	}{
		{"item total off by one", func(o *model.Order) { o.Items[0].TotalPrice++ }},
		{"zero quantity", func(o *model.Order) { o.Items[0].Quantity = 0 }},
		{"negative unit price", func(o *model.Order) { o.Items[0].UnitPrice = -1 }},
		{"subtotal drift", func(o *model.Order) { o.Subtotal += 100 }},
		{"total drift", func(o *model.Order) { o.TotalAmount -= 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := base()
			tc.mutate(order)
			if err := ValidateOrderLedger(order); !errors.Is(err, domainErrors.ErrLedgerViolation) {
				t.Fatalf("expected ledger violation, got %v", err)
			}
		})
	}
}

func TestValidateBudget(t *testing.T) {
	ok := &model.Project{BudgetTotal: 3000, BudgetPaid: 1000, BudgetRemaining: 2000}
	if err := ValidateBudget(ok); err != nil {
		t.Fatalf("expected identity to hold: %v", err)
	}

	cases := []struct {
		name    string
		project model.Project
	}{
		{"leaky total", model.Project{BudgetTotal: 3000, BudgetPaid: 1000, BudgetRemaining: 1999}},
		{"negative paid", model.Project{BudgetTotal: 3000, BudgetPaid: -1, BudgetRemaining: 3001}},
		{"negative remaining", model.Project{BudgetTotal: 3000, BudgetPaid: 3001, BudgetRemaining: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateBudget(&tc.project); !errors.Is(err, domainErrors.ErrLedgerViolation) {
				t.Fatalf("expected ledger violation, got %v", err)
			}
		})
	}
}

func TestValidateRelease(t *testing.T) {
	project := &model.Project{BudgetTotal: 3000, BudgetPaid: 1000, BudgetRemaining: 2000}

	if err := ValidateRelease(project, &model.Milestone{ID: 1, Amount: 2000}); err != nil {
		t.Fatalf("expected release to pass: %v", err)
	}
	if err := ValidateRelease(project, &model.Milestone{ID: 2, Amount: 2001}); !errors.Is(err, domainErrors.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if err := ValidateRelease(project, &model.Milestone{ID: 3, Amount: 100, Released: true}); !errors.Is(err, domainErrors.ErrLedgerViolation) {
		t.Fatalf("expected ledger violation for re-release, got %v", err)
	}
	if err := ValidateRelease(project, &model.Milestone{ID: 4, Amount: -5}); !errors.Is(err, domainErrors.ErrLedgerViolation) {
		t.Fatalf("expected ledger violation for negative amount, got %v", err)
	}
}
