package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// CorrelationIDHeader carries the request correlation id on every record.
const CorrelationIDHeader = "correlation_id"

// RoutingKeyHeader carries the analytics routing key on every record.
const RoutingKeyHeader = "routing_key"

// Producer publishes analytics envelopes to a single topic. The routing key
// becomes the record key so calls of one type share a partition.
type Producer struct {
	syncProducer sarama.SyncProducer
	topic        string
	logger       *zap.Logger
}

// NewProducer dials brokers and returns a producer for topic.
func NewProducer(brokers []string, topic string, logger *zap.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	p, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("error creating producer: %w", err)
	}

	return NewProducerFromSync(p, topic, logger), nil
}

// NewProducerFromSync wraps an existing sarama producer.
func NewProducerFromSync(p sarama.SyncProducer, topic string, logger *zap.Logger) *Producer {
	return &Producer{syncProducer: p, topic: topic, logger: logger}
}

// Publish sends body to the topic keyed by routingKey.
func (p *Producer) Publish(routingKey string, body []byte, correlationID string) error {
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(routingKey),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte(CorrelationIDHeader), Value: []byte(correlationID)},
			{Key: []byte(RoutingKeyHeader), Value: []byte(routingKey)},
		},
	}

	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}

	p.logger.Debug("analytics call sent",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("correlation_id", correlationID),
	)
	return nil
}

// Close flushes and closes the underlying producer.
func (p *Producer) Close() error {
	return p.syncProducer.Close()
}
