package rabbitmq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, logger: zap.NewNop()}

	require.NoError(t, p.Publish("analytics.track", []byte(`{"event":"Cart Viewed"}`), "corr-1"))

	assert.Equal(t, ExchangeName, ch.exchange)
	assert.Equal(t, "analytics.track", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "corr-1", ch.msg.CorrelationId)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.JSONEq(t, `{"event":"Cart Viewed"}`, string(ch.msg.Body))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{err: amqp.ErrClosed}, logger: zap.NewNop()}
	assert.ErrorIs(t, p.Publish("analytics.page", nil, "c"), amqp.ErrClosed)
}

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(_, requeue bool) error {
	f.nacked, f.requeued = true, requeue
	return nil
}

func TestSettle(t *testing.T) {
	msg := amqp.Delivery{RoutingKey: "analytics.track", CorrelationId: "c1"}

	ok := &fakeAck{}
	settle(zap.NewNop(), ok, msg, func(amqp.Delivery) error { return nil })
	assert.True(t, ok.acked)
	assert.False(t, ok.nacked)

	failed := &fakeAck{}
	settle(zap.NewNop(), failed, msg, func(amqp.Delivery) error { return errors.New("db down") })
	assert.False(t, failed.acked)
	assert.True(t, failed.nacked)
	assert.False(t, failed.requeued)
}
