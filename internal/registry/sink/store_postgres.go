package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"namereg/internal/registry/models"
)

// PostgresEventStore persists events to an outbox-style table. The table is
// append-only; downstream consumers read from it or from the Kafka topic,
// whichever the deployment wires.
type PostgresEventStore struct {
	db *sql.DB
}

// NewPostgresEventStore creates a store over an open database handle.
func NewPostgresEventStore(db *sql.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

// Migrate creates the events table when it does not exist yet.
func (s *PostgresEventStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS registry_events (
			id          UUID PRIMARY KEY,
			event_type  TEXT NOT NULL,
			identity    UUID NOT NULL,
			domain_id   INTEGER NOT NULL,
			payload     JSONB NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate registry_events: %w", err)
	}
	return nil
}

// Append writes one event row with the full event as a JSON payload.
func (s *PostgresEventStore) Append(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO registry_events (id, event_type, identity, domain_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), string(event.Type), event.Identity.String(), event.DomainID, payload, event.At,
	)
	if err != nil {
		return fmt.Errorf("insert registry event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *PostgresEventStore) Recent(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM registry_events
		ORDER BY occurred_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query registry events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan registry event: %w", err)
		}
		var event models.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("decode registry event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
