package mq

import (
	"context"

	"github.com/dappwork/marketplace/internal/config"
	"github.com/dappwork/marketplace/internal/modules/service"
)

// EventPublisher routes domain events to the marketplace exchange using the
// routing keys from config.
type EventPublisher struct {
	pub      *Publisher
	exchange string
	keys     map[string]string
}

func NewEventPublisher(pub *Publisher, cfg *config.Config) *EventPublisher {
	rk := cfg.RabbitMQ.RoutingKey
	return &EventPublisher{
		pub:      pub,
		exchange: cfg.RabbitMQ.ExchangeName.MarketplaceEvents,
		keys:     routingKeys(rk),
	}
}

func routingKeys(rk config.RabbitMQRoutingKey) map[string]string {
	return map[string]string{
		service.EventProjectCreated:         rk.ProjectCreated,
		service.EventProposalCreated:        rk.ProposalCreated,
		service.EventMessageCreated:         rk.MessageCreated,
		service.EventMilestoneStatusChanged: rk.MilestoneStatusChanged,
	}
}

func (e *EventPublisher) Publish(ctx context.Context, ev service.Event) error {
	key, ok := e.keys[ev.Kind]
	if !ok || key == "" {
		key = ev.Kind
	}
	return e.pub.PublishJSON(ctx, e.exchange, key, ev)
}
