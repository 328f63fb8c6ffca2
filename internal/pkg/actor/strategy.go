package actor

import (
	"time"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

type Strategy interface {
	IssueToken(actor model.Actor) (string, error)
	ParseToken(token string) (model.Actor, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
