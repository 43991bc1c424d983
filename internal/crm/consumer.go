package crm

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"storefront/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer syncs identified shoppers into the CRM contact table.
type Consumer struct {
	DB     *sql.DB
	logger *zap.Logger
}

// NewConsumer creates a new CRM consumer.
func NewConsumer(db *sql.DB, logger *zap.Logger) *Consumer {
	return &Consumer{DB: db, logger: logger}
}

// Contact is the CRM view of identify traits.
type Contact struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	FullName  string
	Role      string
	Phone     string
}

// ContactFromEnvelope reads the traits of an identify envelope.
func ContactFromEnvelope(env models.Envelope) Contact {
	trait := func(key string) string {
		s, _ := env.Properties[key].(string)
		return s
	}
	return Contact{
		UserID:    env.UserID,
		Email:     trait("email"),
		FirstName: trait("firstName"),
		LastName:  trait("lastName"),
		FullName:  trait("name"),
		Role:      trait("role"),
		Phone:     trait("phone"),
	}
}

// HandleMessage processes an identify envelope for CRM sync. Other call
// types are acknowledged without side effects.
func (c *Consumer) HandleMessage(delivery amqp.Delivery) error {
	var env models.Envelope
	if err := json.Unmarshal(delivery.Body, &env); err != nil {
		c.logger.Warn("failed to unmarshal envelope", zap.Error(err), zap.String("correlation_id", delivery.CorrelationId))
		return err
	}

	log := c.logger.With(
		zap.String("message_id", env.MessageID),
		zap.String("correlation_id", env.CorrelationID),
		zap.String("user_id", env.UserID),
	)

	if env.Type != models.CallIdentify {
		log.Debug("skipping non-identify envelope", zap.String("type", string(env.Type)))
		return nil
	}
	if env.UserID == "" {
		log.Debug("skipping anonymous identify")
		return nil
	}

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

	contact := ContactFromEnvelope(env)
	if err := c.sync(env, contact); err != nil {
		log.Error("error syncing contact", zap.Error(err))
		return err
	}

	log.Info("contact synced", zap.String("email", contact.Email))
	return nil
}

// sync upserts the contact, appends the sync log and records the key in one
// transaction.
func (c *Consumer) sync(env models.Envelope, contact Contact) (err error) {
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
		`INSERT INTO crm_contacts (user_id, email, first_name, last_name, full_name, role, phone, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET email = EXCLUDED.email, first_name = EXCLUDED.first_name,
		               last_name = EXCLUDED.last_name, full_name = EXCLUDED.full_name,
		               role = EXCLUDED.role, phone = EXCLUDED.phone, updated_at = NOW()`,
		contact.UserID, contact.Email, contact.FirstName, contact.LastName,
		contact.FullName, contact.Role, contact.Phone,
	)
	if err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO crm_sync_log (message_id, correlation_id, user_id, user_email)
		 VALUES ($1, $2, $3, $4)`,
		env.MessageID, env.CorrelationID, contact.UserID, contact.Email,
	)
	if err != nil {
		return fmt.Errorf("write sync log: %w", err)
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
