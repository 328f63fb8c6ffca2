package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ordermesh/fulfillment/internal/server/http/handlers"
	"github.com/ordermesh/fulfillment/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. Every route
// requires a valid actor token: the engine trusts the platform identity
// service that mints them.
func Setup(facade handlers.FulfillmentFacade, parser middleware.TokenParser, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	milestoneHandler := handlers.NewMilestoneHandler(facade)
	requestHandler := handlers.NewRequestHandler(facade)

	api := engine.Group("/api")
	api.Use(middleware.AuthRequired(parser))

	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)
	api.GET("/orders/:id/events", orderHandler.Events)
	api.POST("/orders/:id/transitions", orderHandler.Transition)
	api.POST("/orders/:id/review", orderHandler.Review)

	api.POST("/projects", milestoneHandler.CreateProject)
	api.GET("/projects/:id", milestoneHandler.GetProject)
	api.POST("/milestones", milestoneHandler.Create)
	api.GET("/milestones/:id", milestoneHandler.Get)
	api.POST("/milestones/:id/transitions", milestoneHandler.Transition)

	api.POST("/requests", requestHandler.Submit)

	return engine
}
