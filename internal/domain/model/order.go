package model

import "time"

// OrderStatus describes order fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// PaymentStatus describes whether order funds were captured or refunded.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderItem is a single purchased position. TotalPrice is always
// Quantity*UnitPrice. All amounts are minor currency units.
type OrderItem struct {
	ID         int64
	OrderID    int64
	ProductID  int64
	SellerID   int64
	Quantity   int64
	UnitPrice  int64
	TotalPrice int64
}

// Order is the fulfillment aggregate. TotalAmount is derived from its
// components and verified on every mutation. Orders are never deleted;
// terminal states are retained as audit records.
type Order struct {
	ID                 int64
	BuyerID            int64
	Status             OrderStatus
	Items              []OrderItem
	Subtotal           int64
	ShippingCost       int64
	TaxAmount          int64
	DiscountAmount     int64
	TotalAmount        int64
	PaymentStatus      PaymentStatus
	TrackingNumber     *string
	EstimatedDelivery  *time.Time
	ActualDelivery     *time.Time
	CancellationReason *string
	ReturnReason       *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
}

// ComputedSubtotal sums item totals.
func (o *Order) ComputedSubtotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.TotalPrice
	}
	return sum
}

// ComputedTotal derives the order total from its components.
func (o *Order) ComputedTotal() int64 {
	return o.Subtotal + o.ShippingCost + o.TaxAmount - o.DiscountAmount
}
