package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"storefront/internal/analytics"
	"storefront/pkg/config"
	"storefront/pkg/postgres"
	"storefront/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadForService("analytics")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Logger("analytics-consumer"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("analytics")
	logger.Info("starting analytics-consumer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL
	db, err := postgres.Connect(ctx, cfg.DatabaseURL, logger.Named("postgres"))
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "analytics"); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Connect to RabbitMQ
	rmqConn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, logger.Named("rabbitmq"))
	if err != nil {
		logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rmqConn.Close()

	consumer := analytics.NewConsumer(db, logger)

	consumerCfg := rabbitmq.ConsumerConfig{
		QueueName:    "analytics.storefront.events",
		DLQName:      "dlq.analytics.storefront.events",
		RoutingKeys:  []string{"analytics.identify", "analytics.track", "analytics.page"},
		ConsumerName: "analytics-consumer",
	}

	if err := rabbitmq.SetupConsumer(rmqConn, consumerCfg, consumer.HandleMessage, logger.Named("consumer")); err != nil {
		logger.Fatal("failed to setup consumer", zap.Error(err))
	}

	logger.Info("consumer is running, waiting for messages", zap.String("queue", consumerCfg.QueueName))

	<-ctx.Done()

	logger.Info("shutting down")
}
