package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ConsumerConfig holds configuration for setting up a consumer.
type ConsumerConfig struct {
	QueueName    string
	DLQName      string
	RoutingKeys  []string
	ConsumerName string
}

// MessageHandler is a function that processes a delivered message.
// Return nil to ack, return error to nack (dead-lettered, not requeued).
type MessageHandler func(delivery amqp.Delivery) error

// acknowledger is the part of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// SetupConsumer declares queues (main + DLQ), binds them, and starts consuming.
func SetupConsumer(conn *Connection, cfg ConsumerConfig, handler MessageHandler, logger *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}

	if err := declareExchange(ch); err != nil {
		return err
	}

	_, err = ch.QueueDeclare(
		cfg.DLQName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.DLQName,
	}

	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		args,
	)
	if err != nil {
		return err
	}

	for _, key := range cfg.RoutingKeys {
		if err := ch.QueueBind(cfg.QueueName, key, ExchangeName, false, nil); err != nil {
			return err
		}
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := ch.Consume(
		cfg.QueueName,
		cfg.ConsumerName,
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	log := logger.With(zap.String("consumer", cfg.ConsumerName))
	go func() {
		for msg := range msgs {
			settle(log, msg, msg, handler)
		}
	}()

	log.Info("consumer started", zap.String("queue", cfg.QueueName), zap.Strings("routing_keys", cfg.RoutingKeys))
	return nil
}

// settle runs handler and acks or dead-letters the delivery.
func settle(log *zap.Logger, ack acknowledger, msg amqp.Delivery, handler MessageHandler) {
	log.Debug("received message",
		zap.String("routing_key", msg.RoutingKey), zap.String("correlation_id", msg.CorrelationId))

	if err := handler(msg); err != nil {
		log.Warn("error processing message, sending to DLQ",
			zap.Error(err), zap.String("correlation_id", msg.CorrelationId))
		_ = ack.Nack(false, false)
		return
	}
	_ = ack.Ack(false)
}
