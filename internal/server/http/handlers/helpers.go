package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ordermesh/fulfillment/internal/domain/errors"
	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) model.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := val.(model.Actor)
	return actor
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP statuses. Concurrency
// conflicts carry a Retry-After hint so clients re-read and retry.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidArgument):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInsufficientFunds):
		c.Status(http.StatusPaymentRequired)
	case errors.Is(err, domainErrors.ErrConcurrencyConflict):
		c.Header("Retry-After", "1")
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrAlreadyApproved),
		errors.Is(err, domainErrors.ErrDuplicateReview):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrUpstreamFailure):
		c.Status(http.StatusBadGateway)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
