package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

// RequestLogger logs information about incoming requests using slog.
// When the auth middleware resolved an actor, the entry carries the
// actor id and role so transitions can be traced back to who asked.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", latency),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, slog.String("route", route))
		}
		if v, ok := c.Get(ActorContextKey); ok {
			if actor, ok := v.(model.Actor); ok {
				attrs = append(attrs,
					slog.Int64("actor_id", actor.ID),
					slog.String("actor_role", string(actor.Role)))
			}
		}
		logger.Info("http request", attrs...)
	}
}
