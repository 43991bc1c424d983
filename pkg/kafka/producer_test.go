package kafka

import (
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProducer_Publish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "storefront.analytics" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "analytics.track" {
			return errors.New("unexpected key " + string(key))
		}
		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[string(h.Key)] = string(h.Value)
		}
		if headers[CorrelationIDHeader] != "corr-1" || headers[RoutingKeyHeader] != "analytics.track" {
			return errors.New("missing headers")
		}
		return nil
	})

	p := NewProducerFromSync(sp, "storefront.analytics", zap.NewNop())
	require.NoError(t, p.Publish("analytics.track", []byte(`{}`), "corr-1"))
	require.NoError(t, p.Close())
}

func TestProducer_PublishError(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFromSync(sp, "storefront.analytics", zap.NewNop())
	err := p.Publish("analytics.page", []byte(`{}`), "corr-2")

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
