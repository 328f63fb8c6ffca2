package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordermesh/fulfillment/internal/domain/transition"
	"github.com/ordermesh/fulfillment/internal/server/http/dto"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// RequestHandler processes cancel, return, and dispute requests.
type RequestHandler struct {
	facade RequestFacade
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(facade RequestFacade) *RequestHandler {
	return &RequestHandler{facade: facade}
}

// Submit handles POST /api/requests.
func (h *RequestHandler) Submit(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.SubmitRequest(c.Request.Context(),
		transition.EntityType(req.Entity), req.EntityID, usecase.RequestKind(req.Kind), actor, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.RequestResponse{}
	if result.Order != nil {
		order := toOrderResponse(result.Order)
		response.Order = &order
	}
	if result.Milestone != nil {
		milestone := toMilestoneResponse(result.Milestone)
		response.Milestone = &milestone
	}

	c.JSON(http.StatusOK, response)
}
