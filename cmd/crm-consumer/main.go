package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"storefront/internal/crm"
	"storefront/pkg/config"
	"storefront/pkg/postgres"
	"storefront/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadForService("crm")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Logger("crm-consumer"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("crm")
	logger.Info("starting crm-consumer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg.DatabaseURL, logger.Named("postgres"))
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "crm"); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, logger.Named("rabbitmq"))
	if err != nil {
		logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rmqConn.Close()

	consumer := crm.NewConsumer(db, logger)

	consumerCfg := rabbitmq.ConsumerConfig{
		QueueName:    "crm.storefront.identify",
		DLQName:      "dlq.crm.storefront.identify",
		RoutingKeys:  []string{"analytics.identify"},
		ConsumerName: "crm-consumer",
	}

	if err := rabbitmq.SetupConsumer(rmqConn, consumerCfg, consumer.HandleMessage, logger.Named("consumer")); err != nil {
		logger.Fatal("failed to setup consumer", zap.Error(err))
	}

	logger.Info("consumer is running, waiting for messages", zap.String("queue", consumerCfg.QueueName))

	<-ctx.Done()

	logger.Info("shutting down")
}
