package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ostracon-app/ostracon/internal/audit"
	"github.com/ostracon-app/ostracon/internal/events"
)

// PostgresAuditStore is a PostgreSQL implementation of audit.Store.
//
// Schema:
//
//	CREATE TABLE security_events (
//	    id                 TEXT PRIMARY KEY,
//	    event_type         TEXT NOT NULL,
//	    user_id            TEXT NOT NULL,
//	    client_ip          TEXT,
//	    user_agent         TEXT,
//	    request_id         TEXT,
//	    remaining_attempts BIGINT,
//	    occurred_at        TIMESTAMPTZ NOT NULL
//	);
type PostgresAuditStore struct {
	pool *pgxpool.Pool
}

// NewPostgresAuditStore creates a new PostgreSQL-backed audit store.
func NewPostgresAuditStore(pool *pgxpool.Pool) *PostgresAuditStore {
	return &PostgresAuditStore{pool: pool}
}

func (p *PostgresAuditStore) SaveSecurityEvent(ctx context.Context, event *events.SecurityEvent) error {
	query := `
		INSERT INTO security_events
			(id, event_type, user_id, client_ip, user_agent, request_id, remaining_attempts, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		string(event.Type),
		event.UserID,
		nullableString(event.ClientIP),
		nullableString(event.UserAgent),
		nullableString(event.RequestID),
		event.RemainingAttempts,
		event.OccurredAt,
	)

	return err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Shutdown closes the underlying connection pool.
func (p *PostgresAuditStore) Shutdown() error {
	p.pool.Close()

	return nil
}

// Compile-time check.
var _ audit.Store = (*PostgresAuditStore)(nil)
