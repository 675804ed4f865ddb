package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"memoria/internal/audit"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/tx"
)

// PostgresStore persists audit events in the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event audit.Event) error {
	// Events recorded before authentication have no actor.
	var actorID *uuid.UUID
	if !event.ActorID.IsZero() {
		actor := uuid.UUID(event.ActorID)
		actorID = &actor
	}

	query := `
		INSERT INTO audit_events (id, actor_id, action, subject, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		event.ID,
		actorID,
		event.Action,
		event.Subject,
		event.Detail,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByActor returns the actor's events, newest first.
func (s *PostgresStore) ListByActor(ctx context.Context, actorID id.UserID) ([]*audit.Event, error) {
	query := `
		SELECT id, actor_id, action, subject, detail, occurred_at
		FROM audit_events
		WHERE actor_id = $1
		ORDER BY occurred_at DESC
	`
	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, query, uuid.UUID(actorID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []*audit.Event
	for rows.Next() {
		var (
			e     audit.Event
			actor *uuid.UUID
		)
		if err := rows.Scan(&e.ID, &actor, &e.Action, &e.Subject, &e.Detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if actor != nil {
			e.ActorID = id.UserID(*actor)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
