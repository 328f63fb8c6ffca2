package dto

import (
	"time"
)

// OrderItemRequest describes a purchased position at checkout. Amounts
// are minor currency units.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	SellerID  int64 `json:"seller_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// CreateOrderRequest describes checkout commit payload. Totals are
// computed server side.
type CreateOrderRequest struct {
	Items          []OrderItemRequest `json:"items"`
	ShippingCost   int64              `json:"shipping_cost"`
	TaxAmount      int64              `json:"tax_amount"`
	DiscountAmount int64              `json:"discount_amount"`
}

// OrderTransitionRequest describes a lifecycle action applied to an order.
type OrderTransitionRequest struct {
	Action            string     `json:"action"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

// ReviewRequest describes a product review against a delivered order.
type ReviewRequest struct {
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Content   string `json:"content,omitempty"`
}

// OrderItemResponse mirrors a stored order item.
type OrderItemResponse struct {
	ID         int64 `json:"id"`
	ProductID  int64 `json:"product_id"`
	SellerID   int64 `json:"seller_id"`
	Quantity   int64 `json:"quantity"`
	UnitPrice  int64 `json:"unit_price"`
	TotalPrice int64 `json:"total_price"`
}

// OrderResponse is the committed order snapshot returned to clients.
type OrderResponse struct {
	ID                 int64               `json:"id"`
	BuyerID            int64               `json:"buyer_id"`
	Status             string              `json:"status"`
	Items              []OrderItemResponse `json:"items"`
	Subtotal           int64               `json:"subtotal"`
	ShippingCost       int64               `json:"shipping_cost"`
	TaxAmount          int64               `json:"tax_amount"`
	DiscountAmount     int64               `json:"discount_amount"`
	TotalAmount        int64               `json:"total_amount"`
	PaymentStatus      string              `json:"payment_status"`
	TrackingNumber     *string             `json:"tracking_number,omitempty"`
	EstimatedDelivery  *time.Time          `json:"estimated_delivery,omitempty"`
	ActualDelivery     *time.Time          `json:"actual_delivery,omitempty"`
	CancellationReason *string             `json:"cancellation_reason,omitempty"`
	ReturnReason       *string             `json:"return_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Version            int64               `json:"version"`
}
