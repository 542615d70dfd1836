package service

import (
	"context"
	"encoding/json"
	"fmt"

	"move-market/internal/domain/user"
	"move-market/internal/general/contracts"
	"move-market/internal/general/logger"
	"move-market/internal/general/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSink is the socket-facing side of the consumers.
// Satisfied by websocket.Notifier.
type NotificationSink interface {
	Push(userID int64, payload any) error
	Broadcast(role user.Role, payload any) int
	Online(userID int64) bool
}

// DecisionConsumer drains the estimate-decision queue and pushes each
// message to the request owner's notification socket.
type DecisionConsumer struct {
	logger   *logger.Logger
	client   *rabbitmq.Client
	notifier NotificationSink
}

// NewDecisionConsumer wires the queue consumer to the socket notifier.
func NewDecisionConsumer(log *logger.Logger, client *rabbitmq.Client, notifier NotificationSink) *DecisionConsumer {
	return &DecisionConsumer{logger: log, client: client, notifier: notifier}
}

// Run consumes until ctx is cancelled. Malformed messages are dropped.
func (c *DecisionConsumer) Run(ctx context.Context, prefetch int) error {
	return c.client.Consume(ctx, contracts.QueueEstimateDecisions, "notification-service-decisions", prefetch, c.handle)
}

func (c *DecisionConsumer) handle(ctx context.Context, d amqp.Delivery) error {
	var msg contracts.EstimateDecidedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		c.logger.Error(ctx, "decision_decode_failed", "Failed to decode decision message", err, map[string]any{
			"routing_key": d.RoutingKey,
		})
		return fmt.Errorf("decode decision message: %w", err)
	}

	payload := map[string]any{
		"type":        "estimate_decided",
		"estimate_id": msg.EstimateID,
		"request_id":  msg.RequestID,
		"status":      msg.Status,
		"price":       msg.Price,
		"reason":      msg.Reason,
	}

	if err := c.notifier.Push(msg.OwnerID, payload); err != nil {
		// the socket broke mid-write; the message is spent either way
		c.logger.Error(ctx, "notification_push_failed", "Failed to push notification", err, map[string]any{
			"owner_id":    msg.OwnerID,
			"estimate_id": msg.EstimateID,
		})
		return nil
	}

	if c.notifier.Online(msg.OwnerID) {
		c.logger.Info(ctx, "notification_pushed", "Decision notification delivered", map[string]any{
			"owner_id":    msg.OwnerID,
			"estimate_id": msg.EstimateID,
			"status":      msg.Status,
		})
	}
	return nil
}

// RequestConsumer drains the request-created queue and announces each
// new request to every connected driver socket.
type RequestConsumer struct {
	logger   *logger.Logger
	client   *rabbitmq.Client
	notifier NotificationSink
}

// NewRequestConsumer wires the queue consumer to the socket notifier.
func NewRequestConsumer(log *logger.Logger, client *rabbitmq.Client, notifier NotificationSink) *RequestConsumer {
	return &RequestConsumer{logger: log, client: client, notifier: notifier}
}

// Run consumes until ctx is cancelled. Malformed messages are dropped.
func (c *RequestConsumer) Run(ctx context.Context, prefetch int) error {
	return c.client.Consume(ctx, contracts.QueueRequestCreated, "notification-service-requests", prefetch, c.handle)
}

func (c *RequestConsumer) handle(ctx context.Context, d amqp.Delivery) error {
	var msg contracts.RequestCreatedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		c.logger.Error(ctx, "request_decode_failed", "Failed to decode request message", err, map[string]any{
			"routing_key": d.RoutingKey,
		})
		return fmt.Errorf("decode request message: %w", err)
	}

	payload := map[string]any{
		"type":        "request_created",
		"request_id":  msg.RequestID,
		"moving_type": msg.MovingType,
		"moving_date": msg.MovingDate,
		"origin":      msg.Origin,
	}

	delivered := c.notifier.Broadcast(user.RoleDriver, payload)
	c.logger.Info(ctx, "request_broadcast", "New request announced to drivers", map[string]any{
		"request_id":  msg.RequestID,
		"moving_type": msg.MovingType,
		"delivered":   delivered,
	})
	return nil
}
