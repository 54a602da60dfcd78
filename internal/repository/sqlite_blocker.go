package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
)

// SQLiteBlockerRepo implements BlockerRepo using a SQLite database.
type SQLiteBlockerRepo struct {
	db db.DBTX
}

// NewSQLiteBlockerRepo creates a new SQLiteBlockerRepo.
func NewSQLiteBlockerRepo(conn db.DBTX) *SQLiteBlockerRepo {
	return &SQLiteBlockerRepo{db: conn}
}

const blockerColumns = `id, project_id, kind, reason, start_date, end_date, impact_days, resolved, applied, created_at, updated_at`

func (r *SQLiteBlockerRepo) Create(ctx context.Context, b *domain.BlockerPeriod) error {
	query := `INSERT INTO blocker_periods (` + blockerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.ProjectID,
		string(b.Kind),
		b.Reason,
		b.StartDate,
		nullableDate(b.EndDate),
		nullableIntToValue(b.ImpactDays),
		boolToInt(b.Resolved),
		boolToInt(b.Applied),
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting blocker: %w", err)
	}
	return nil
}

func (r *SQLiteBlockerRepo) GetByID(ctx context.Context, id string) (*domain.BlockerPeriod, error) {
	query := `SELECT ` + blockerColumns + ` FROM blocker_periods WHERE id = ?`
	b, err := scanBlocker(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "blocker", ID: id}
	}
	return b, err
}

func (r *SQLiteBlockerRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.BlockerPeriod, error) {
	query := `SELECT ` + blockerColumns + ` FROM blocker_periods WHERE project_id = ? ORDER BY start_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing blockers: %w", err)
	}
	defer rows.Close()

	var out []*domain.BlockerPeriod
	for rows.Next() {
		b, err := scanBlocker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blockers: %w", err)
	}
	return out, nil
}

func (r *SQLiteBlockerRepo) Update(ctx context.Context, b *domain.BlockerPeriod) error {
	query := `UPDATE blocker_periods SET reason = ?, end_date = ?, impact_days = ?, resolved = ?, applied = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.Reason,
		nullableDate(b.EndDate),
		nullableIntToValue(b.ImpactDays),
		boolToInt(b.Resolved),
		boolToInt(b.Applied),
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating blocker: %w", err)
	}
	return requireAffected(res, "blocker", b.ID)
}

func scanBlocker(row rowScanner) (*domain.BlockerPeriod, error) {
	var b domain.BlockerPeriod
	var kindStr, createdAtStr, updatedAtStr string
	var end domain.Date
	var impact sql.NullInt64
	var resolved, applied int

	err := row.Scan(
		&b.ID, &b.ProjectID, &kindStr, &b.Reason, &b.StartDate, &end,
		&impact, &resolved, &applied, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning blocker: %w", err)
	}
	b.Kind = domain.BlockerKind(kindStr)
	b.EndDate = datePtr(end)
	b.ImpactDays = nullableInt(impact)
	b.Resolved = intToBool(resolved)
	b.Applied = intToBool(applied)
	if b.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &b, nil
}
