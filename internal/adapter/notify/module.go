package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordermesh/fulfillment/internal/config"
)

// Module exposes the webhook notifier to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	return NewWebhookNotifier(p.Config.NotifyAddress, p.Logger)
}
