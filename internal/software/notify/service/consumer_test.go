package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"move-market/internal/domain/user"
	"move-market/internal/general/contracts"
	"move-market/internal/general/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	pushed    map[int64][]any
	broadcast []any
	online    map[int64]bool
	pushErr   error
}

func newFakeSink() *fakeSink {
	return &fakeSink{pushed: map[int64][]any{}, online: map[int64]bool{}}
}

func (f *fakeSink) Push(userID int64, payload any) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed[userID] = append(f.pushed[userID], payload)
	return nil
}

func (f *fakeSink) Broadcast(role user.Role, payload any) int {
	if role != user.RoleDriver {
		return 0
	}
	f.broadcast = append(f.broadcast, payload)
	return len(f.broadcast)
}

func (f *fakeSink) Online(userID int64) bool { return f.online[userID] }

func TestDecisionConsumer_Handle(t *testing.T) {
	sink := newFakeSink()
	sink.online[2] = true
	c := NewDecisionConsumer(logger.New("test"), nil, sink)

	body, err := json.Marshal(contracts.EstimateDecidedMessage{
		EstimateID: 5,
		RequestID:  100,
		DriverID:   10,
		OwnerID:    2,
		Status:     "ACCEPTED",
		Price:      180000,
	})
	require.NoError(t, err)

	err = c.handle(context.Background(), amqp.Delivery{Body: body, RoutingKey: "notify.estimate.2"})
	require.NoError(t, err)

	require.Len(t, sink.pushed[2], 1)
	payload, ok := sink.pushed[2][0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "estimate_decided", payload["type"])
	assert.Equal(t, int64(5), payload["estimate_id"])
	assert.Equal(t, "ACCEPTED", payload["status"])
}

func TestDecisionConsumer_MalformedBodyDropped(t *testing.T) {
	sink := newFakeSink()
	c := NewDecisionConsumer(logger.New("test"), nil, sink)

	err := c.handle(context.Background(), amqp.Delivery{Body: []byte("not json")})
	assert.Error(t, err)
	assert.Empty(t, sink.pushed)
}

func TestDecisionConsumer_PushFailureNotRequeued(t *testing.T) {
	sink := newFakeSink()
	sink.pushErr = assert.AnError
	c := NewDecisionConsumer(logger.New("test"), nil, sink)

	body, err := json.Marshal(contracts.EstimateDecidedMessage{EstimateID: 5, OwnerID: 2})
	require.NoError(t, err)

	// a broken socket spends the delivery instead of cycling it
	err = c.handle(context.Background(), amqp.Delivery{Body: body})
	assert.NoError(t, err)
}

func TestRequestConsumer_Handle(t *testing.T) {
	sink := newFakeSink()
	c := NewRequestConsumer(logger.New("test"), nil, sink)

	body, err := json.Marshal(contracts.RequestCreatedMessage{
		RequestID:  100,
		OwnerID:    2,
		MovingType: "SMALL",
		MovingDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Origin:     "서울 강남구",
	})
	require.NoError(t, err)

	err = c.handle(context.Background(), amqp.Delivery{Body: body, RoutingKey: "notify.request.SMALL"})
	require.NoError(t, err)

	require.Len(t, sink.broadcast, 1)
	payload, ok := sink.broadcast[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "request_created", payload["type"])
	assert.Equal(t, "SMALL", payload["moving_type"])
	assert.Equal(t, "서울 강남구", payload["origin"])

	// owners are not broadcast targets
	assert.Empty(t, sink.pushed)
}

func TestRequestConsumer_MalformedBodyDropped(t *testing.T) {
	sink := newFakeSink()
	c := NewRequestConsumer(logger.New("test"), nil, sink)

	err := c.handle(context.Background(), amqp.Delivery{Body: []byte("{broken")})
	assert.Error(t, err)
	assert.Empty(t, sink.broadcast)
}
