package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"secretstore/internal/models"
)

// PostgresAuditRepository implements the append-only audit log against
// PostgreSQL.
type PostgresAuditRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresAuditRepository creates a PostgresAuditRepository with the
// given database connection.
func NewPostgresAuditRepository(db *sql.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{DB: db}
}

// Append records one audit event. Events are never updated or deleted.
func (r *PostgresAuditRepository) Append(ctx context.Context, event *models.AuditEvent) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO audit_events (actor_id, action, object_type, object_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ActorID, event.Action, event.ObjectType, event.ObjectID, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("Append audit event: %w", err)
	}
	return nil
}

// List returns the full audit log ordered by insertion.
func (r *PostgresAuditRepository) List(ctx context.Context) ([]models.AuditEvent, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, actor_id, action, object_type, object_id, created_at
		FROM audit_events ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("List audit events: %w", err)
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var ev models.AuditEvent
		if err := rows.Scan(&ev.ID, &ev.ActorID, &ev.Action, &ev.ObjectType, &ev.ObjectID, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return events, nil
}

// Snapshot computes the usage statistics inside a read-only transaction,
// so the read is a consistent point in time and never blocks appends.
// First and last active users tie-break on insertion order; an actor whose
// user row is gone is reported by raw id.
func (r *PostgresAuditRepository) Snapshot(ctx context.Context) (*models.Statistics, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	var stats models.Statistics
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT actor_id) FROM audit_events
	`).Scan(&stats.TotalActions, &stats.UniqueUsers)
	if err != nil {
		return nil, fmt.Errorf("snapshot counts: %w", err)
	}

	first, err := r.edgeActor(ctx, tx, "ASC")
	if err != nil {
		return nil, err
	}
	last, err := r.edgeActor(ctx, tx, "DESC")
	if err != nil {
		return nil, err
	}
	stats.FirstActiveUser = first
	stats.LastActiveUser = last

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return &stats, nil
}

// edgeActor resolves the username behind the earliest or latest event.
func (r *PostgresAuditRepository) edgeActor(ctx context.Context, tx *sql.Tx, order string) (string, error) {
	// order is one of the two literals below, never caller input.
	query := `
		SELECT COALESCE(u.username, e.actor_id)
		FROM audit_events e LEFT JOIN users u ON u.id = e.actor_id
		ORDER BY e.created_at ` + order + `, e.id ` + order + ` LIMIT 1`

	var actor string
	err := tx.QueryRowContext(ctx, query).Scan(&actor)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("snapshot edge actor: %w", err)
	}
	return actor, nil
}
