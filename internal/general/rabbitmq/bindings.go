package rabbitmq

import (
	"fmt"

	"move-market/internal/general/contracts"

	amqp "github.com/rabbitmq/amqp091-go"
)

// declareTopology sets up the notification exchange, queues, and bindings.
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(contracts.ExchangeNotifyTopic, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", contracts.ExchangeNotifyTopic, err)
	}

	queues := []string{
		contracts.QueueEstimateDecisions,
		contracts.QueueRequestCreated,
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	bindings := []struct {
		queue      string
		routingKey string
	}{
		{contracts.QueueEstimateDecisions, contracts.RouteEstimateDecidedPrefix + "*"},
		{contracts.QueueRequestCreated, contracts.RouteRequestCreatedPrefix + "*"},
	}
	for _, b := range bindings {
		if err := ch.QueueBind(b.queue, b.routingKey, contracts.ExchangeNotifyTopic, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, contracts.ExchangeNotifyTopic, err)
		}
	}

	return nil
}
