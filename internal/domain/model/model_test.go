package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"confirmed", OrderStatusConfirmed, "confirmed"},
		{"processing", OrderStatusProcessing, "processing"},
		{"shipped", OrderStatusShipped, "shipped"},
		{"delivered", OrderStatusDelivered, "delivered"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
		{"returned", OrderStatusReturned, "returned"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestOrderComputedTotals(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: 1500, TotalPrice: 3000},
			{Quantity: 1, UnitPrice: 499, TotalPrice: 499},
		},
		Subtotal:       3499,
		ShippingCost:   500,
		TaxAmount:      350,
		DiscountAmount: 349,
	}

	if got := order.ComputedSubtotal(); got != 3499 {
		t.Fatalf("expected subtotal 3499, got %d", got)
	}
	if got := order.ComputedTotal(); got != 4000 {
		t.Fatalf("expected total 4000, got %d", got)
	}
}

func TestMilestoneDeliverablesComplete(t *testing.T) {
	cases := []struct {
		name         string
		deliverables []Deliverable
		want         bool
	}{
		{"empty set", nil, false},
		{"missing artifact", []Deliverable{{Name: "design"}, {Name: "build", Artifact: "v1"}}, false},
		{"all populated", []Deliverable{{Name: "design", Artifact: "fig-1"}, {Name: "build", Artifact: "v1"}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Milestone{Deliverables: tc.deliverables}
			if got := m.DeliverablesComplete(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleBuyer, RoleSeller, RoleClient, RoleFreelancer, RoleSystem} {
		if !ValidRole(role) {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	if ValidRole(Role("admin")) {
		t.Fatal("expected unknown role to be invalid")
	}
}
