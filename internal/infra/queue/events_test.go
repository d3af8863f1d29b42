package mq

import (
	"testing"

	"github.com/dappwork/marketplace/internal/config"
	"github.com/dappwork/marketplace/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestRoutingKeys(t *testing.T) {
	keys := routingKeys(config.RabbitMQRoutingKey{
		ProjectCreated:         "p.created",
		ProposalCreated:        "pr.created",
		MessageCreated:         "m.created",
		MilestoneStatusChanged: "ms.changed",
	})

	assert.Equal(t, "p.created", keys[service.EventProjectCreated])
	assert.Equal(t, "pr.created", keys[service.EventProposalCreated])
	assert.Equal(t, "m.created", keys[service.EventMessageCreated])
	assert.Equal(t, "ms.changed", keys[service.EventMilestoneStatusChanged])
}

func TestTableCarrier(t *testing.T) {
	c := tableCarrier{table: amqp.Table{"n": 7}}
	c.Set("traceparent", "00-abc-def-01")

	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, "7", c.Get("n"))
	assert.Equal(t, "", c.Get("missing"))
	assert.ElementsMatch(t, []string{"n", "traceparent"}, c.Keys())
}
