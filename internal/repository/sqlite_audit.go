package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
)

// SQLiteAuditRepo appends to and reads the audit log.
type SQLiteAuditRepo struct {
	db db.DBTX
}

func NewSQLiteAuditRepo(conn db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: conn}
}

func (r *SQLiteAuditRepo) Create(ctx context.Context, e *domain.AuditEntry) error {
	payload := e.Payload
	if payload == "" {
		payload = "{}"
	}
	query := `INSERT INTO audit_log (id, entity_type, entity_id, action, actor, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.EntityType, e.EntityID, e.Action, e.Actor, payload, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

func (r *SQLiteAuditRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditEntry, error) {
	query := `SELECT id, entity_type, entity_id, action, actor, payload, created_at
		FROM audit_log WHERE entity_type = ? AND entity_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var createdAtStr string
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.Actor, &e.Payload, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		if e.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}
	return out, nil
}
