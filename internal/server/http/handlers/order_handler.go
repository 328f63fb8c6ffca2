package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
	"github.com/ordermesh/fulfillment/internal/server/http/dto"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), &model.Order{
		BuyerID:        actor.ID,
		Items:          items,
		ShippingCost:   req.ShippingCost,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Events handles GET /api/orders/:id/events.
func (h *OrderHandler) Events(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	events, err := h.facade.OrderEvents(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		response = append(response, dto.EventResponse{
			ID:            e.ID,
			AggregateType: string(e.AggregateType),
			AggregateID:   e.AggregateID,
			Type:          e.Type,
			ActorID:       e.ActorID,
			ActorRole:     string(e.ActorRole),
			Payload:       e.Payload,
			CreatedAt:     e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Transition handles POST /api/orders/:id/transitions. Cancel and
// return carry a mandatory reason and go through the request endpoint
// instead.
func (h *OrderHandler) Transition(c *gin.Context) {
	actor := CurrentActor(c)

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.OrderTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	action := transition.Action(req.Action)
	if action == transition.ActionCancel || action == transition.ActionReturn {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.SubmitOrderTransition(c.Request.Context(), orderID, action, actor, usecase.OrderTransitionPayload{
		TrackingNumber:    req.TrackingNumber,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Review handles POST /api/orders/:id/review.
func (h *OrderHandler) Review(c *gin.Context) {
	actor := CurrentActor(c)

	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.Review(c.Request.Context(), orderID, req.ProductID, actor, req.Rating, req.Content); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			SellerID:   item.SellerID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	return dto.OrderResponse{
		ID:                 order.ID,
		BuyerID:            order.BuyerID,
		Status:             string(order.Status),
		Items:              items,
		Subtotal:           order.Subtotal,
		ShippingCost:       order.ShippingCost,
		TaxAmount:          order.TaxAmount,
		DiscountAmount:     order.DiscountAmount,
		TotalAmount:        order.TotalAmount,
		PaymentStatus:      string(order.PaymentStatus),
		TrackingNumber:     order.TrackingNumber,
		EstimatedDelivery:  order.EstimatedDelivery,
		ActualDelivery:     order.ActualDelivery,
		CancellationReason: order.CancellationReason,
		ReturnReason:       order.ReturnReason,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
		Version:            order.Version,
	}
}
