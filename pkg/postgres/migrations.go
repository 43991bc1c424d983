package postgres

import (
	"database/sql"
	"fmt"
)

const idempotencyKeys = `CREATE TABLE IF NOT EXISTS idempotency_keys (
	message_id VARCHAR(36) PRIMARY KEY,
	processed_at TIMESTAMP NOT NULL DEFAULT NOW()
)`

// RunMigrations executes database migrations for service.
func RunMigrations(db *sql.DB, service string) error {
	for i, m := range getServiceMigrations(service) {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d for %s: %w", i, service, err)
		}
	}
	return nil
}

func getServiceMigrations(service string) []string {
	switch service {
	case "analytics":
		return []string{
			idempotencyKeys,
			`CREATE TABLE IF NOT EXISTS analytics_events (
				id SERIAL PRIMARY KEY,
				message_id VARCHAR(36) NOT NULL UNIQUE,
				correlation_id VARCHAR(64),
				call_type VARCHAR(16) NOT NULL,
				event_name VARCHAR(128),
				user_id VARCHAR(64),
				properties JSONB NOT NULL DEFAULT '{}',
				sent_at TIMESTAMP NOT NULL,
				received_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS analytics_metrics (
				id SERIAL PRIMARY KEY,
				metric_date DATE NOT NULL,
				event_name VARCHAR(128) NOT NULL,
				event_count INTEGER NOT NULL DEFAULT 0,
				revenue NUMERIC(14, 2) NOT NULL DEFAULT 0,
				UNIQUE(metric_date, event_name)
			)`,
		}
	case "crm":
		return []string{
			idempotencyKeys,
			`CREATE TABLE IF NOT EXISTS crm_contacts (
				user_id VARCHAR(64) PRIMARY KEY,
				email VARCHAR(255),
				first_name VARCHAR(255),
				last_name VARCHAR(255),
				full_name VARCHAR(512),
				role VARCHAR(64),
				phone VARCHAR(64),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS crm_sync_log (
				id SERIAL PRIMARY KEY,
				message_id VARCHAR(36) NOT NULL,
				correlation_id VARCHAR(64),
				user_id VARCHAR(64) NOT NULL,
				user_email VARCHAR(255),
				synced_at TIMESTAMP NOT NULL DEFAULT NOW()
			)`,
		}
	default:
		return []string{idempotencyKeys}
	}
}
