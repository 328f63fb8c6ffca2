package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordermesh/fulfillment/internal/config"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// Module exposes the payment gateway client to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (usecase.PaymentGateway, error) {
	return NewHTTPGateway(p.Config.GatewayAddress, p.Logger)
}
