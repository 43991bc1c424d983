package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"storefront/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Consumer stores analytics calls and keeps daily aggregates.
type Consumer struct {
	DB     *sql.DB
	logger *zap.Logger
}

// NewConsumer creates a new analytics consumer.
func NewConsumer(db *sql.DB, logger *zap.Logger) *Consumer {
	return &Consumer{DB: db, logger: logger}
}

// HandleMessage processes one analytics envelope.
func (c *Consumer) HandleMessage(delivery amqp.Delivery) error {
	var env models.Envelope
	if err := json.Unmarshal(delivery.Body, &env); err != nil {
		c.logger.Warn("failed to unmarshal envelope", zap.Error(err), zap.String("correlation_id", delivery.CorrelationId))
		return err
	}

	log := c.logger.With(
		zap.String("message_id", env.MessageID),
		zap.String("correlation_id", env.CorrelationID),
		zap.String("type", string(env.Type)),
		zap.String("event", env.Event),
	)
	log.Debug("processing envelope")

	var exists bool
	err := c.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM idempotency_keys WHERE message_id = $1)", env.MessageID).Scan(&exists)
	if err != nil {
		log.Error("error checking idempotency", zap.Error(err))
		return err
	}
	if exists {
		log.Info("duplicate envelope ignored")
		return nil
	}

	if env.Properties == nil {
		env.Properties = models.Properties{}
	}
	props, err := json.Marshal(env.Properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}

	metricDate := env.Timestamp.Format("2006-01-02")
	if err := c.store(env, string(props), metricDate); err != nil {
		log.Error("error storing envelope", zap.Error(err))
		return err
	}

	log.Info("metrics updated", zap.String("date", metricDate))
	return nil
}

// store writes the event row, the metrics upsert and the idempotency key in
// one transaction so a failed delivery leaves nothing behind for its retry.
func (c *Consumer) store(env models.Envelope, props, metricDate string) (err error) {
	tx, err := c.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.Exec(
		`INSERT INTO analytics_events (message_id, correlation_id, call_type, event_name, user_id, properties, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		env.MessageID, env.CorrelationID, string(env.Type), env.Event, env.UserID, props, env.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO analytics_metrics (metric_date, event_name, event_count, revenue)
		 VALUES ($1, $2, 1, $3)
		 ON CONFLICT (metric_date, event_name)
		 DO UPDATE SET event_count = analytics_metrics.event_count + 1,
		               revenue = analytics_metrics.revenue + EXCLUDED.revenue`,
		metricDate, MetricName(env), Revenue(env).StringFixed(2),
	)
	if err != nil {
		return fmt.Errorf("upsert metrics: %w", err)
	}

	_, err = tx.Exec("INSERT INTO idempotency_keys (message_id) VALUES ($1) ON CONFLICT DO NOTHING", env.MessageID)
	if err != nil {
		return fmt.Errorf("record idempotency key: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// MetricName is the aggregation key: the event name for track calls,
// "page: <name>" for pages and "identify" for identify calls.
func MetricName(env models.Envelope) string {
	switch env.Type {
	case models.CallPage:
		return "page: " + env.Event
	case models.CallIdentify:
		return "identify"
	default:
		return env.Event
	}
}

// Revenue returns the envelope's revenue, zero when absent.
func Revenue(env models.Envelope) decimal.Decimal {
	v, ok := env.Revenue()
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
