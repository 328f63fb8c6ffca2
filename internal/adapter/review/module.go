package review

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordermesh/fulfillment/internal/config"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// Module exposes the review store client to the fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (usecase.ReviewStore, error) {
	return NewHTTPStore(p.Config.ReviewStoreAddress, p.Logger)
}
