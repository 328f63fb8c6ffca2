package di

import (
	"github.com/ordermesh/fulfillment/internal/adapter/notify"
	"github.com/ordermesh/fulfillment/internal/adapter/payment"
	"github.com/ordermesh/fulfillment/internal/adapter/review"
	"github.com/ordermesh/fulfillment/internal/app"
	"github.com/ordermesh/fulfillment/internal/config"
	"github.com/ordermesh/fulfillment/internal/logger"
	"github.com/ordermesh/fulfillment/internal/pkg/actor"
	"github.com/ordermesh/fulfillment/internal/server/http/handlers"
	"github.com/ordermesh/fulfillment/internal/server/http/middleware"
	"github.com/ordermesh/fulfillment/internal/server/http/router"
	"github.com/ordermesh/fulfillment/internal/storage/postgres"
	"github.com/ordermesh/fulfillment/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		actor.Module,
		postgres.Module,
		payment.Module,
		notify.Module,
		review.Module,
		usecase.Module,
		fx.Provide(func(n notify.Notifier) app.EventNotifier { return n }),
		fx.Provide(func(f *app.FulfillmentFacade) handlers.FulfillmentFacade { return f }),
		fx.Provide(func(f *app.FulfillmentFacade) middleware.TokenParser { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
