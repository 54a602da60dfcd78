package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

const activityColumns = `a.id, a.phase_id, a.code, a.name, a.order_index, a.duration_days,
	a.start_date, a.end_date, a.status, a.progress, a.participation_type, a.updated_at`

func (r *SQLitePhaseRepo) CreatePhase(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (id, project_id, type, order_index) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.ProjectID, string(p.Type), p.Order); err != nil {
		return fmt.Errorf("inserting phase %s: %w", p.Type, err)
	}
	return nil
}

func (r *SQLitePhaseRepo) CreateActivity(ctx context.Context, a *domain.Activity) error {
	if err := a.ValidateDates(); err != nil {
		return err
	}
	query := `INSERT INTO activities (id, phase_id, code, name, order_index, duration_days,
		start_date, end_date, status, progress, participation_type, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.PhaseID,
		a.Code,
		a.Name,
		a.Order,
		a.DurationDays,
		nullableDate(a.StartDate),
		nullableDate(a.EndDate),
		string(a.Status),
		a.Progress,
		string(a.ParticipationType),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting activity %s: %w", a.Code, err)
	}
	return nil
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, type, order_index FROM phases WHERE project_id = ? ORDER BY order_index`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	var phases []domain.Phase
	index := make(map[string]int)
	for rows.Next() {
		var p domain.Phase
		var typeStr string
		if err := rows.Scan(&p.ID, &p.ProjectID, &typeStr, &p.Order); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning phase: %w", err)
		}
		p.Type = domain.PhaseType(typeStr)
		index[p.ID] = len(phases)
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	rows.Close()

	query := `SELECT ` + activityColumns + `
		FROM activities a JOIN phases p ON a.phase_id = p.id
		WHERE p.project_id = ?
		ORDER BY p.order_index, a.order_index`
	arows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		a, err := scanActivity(arows)
		if err != nil {
			return nil, err
		}
		i := index[a.PhaseID]
		phases[i].Activities = append(phases[i].Activities, *a)
	}
	if err := arows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a WHERE a.id = ?`
	a, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "activity", ID: id}
	}
	return a, err
}

func (r *SQLitePhaseRepo) ActivityProjectID(ctx context.Context, activityID string) (string, error) {
	var projectID string
	err := r.db.QueryRowContext(ctx,
		`SELECT p.project_id FROM activities a JOIN phases p ON a.phase_id = p.id WHERE a.id = ?`,
		activityID).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &domain.NotFoundError{Entity: "activity", ID: activityID}
	}
	if err != nil {
		return "", fmt.Errorf("resolving activity project: %w", err)
	}
	return projectID, nil
}

// UpdateActivity writes the mutable fields: dates, status and progress.
func (r *SQLitePhaseRepo) UpdateActivity(ctx context.Context, a *domain.Activity) error {
	if err := a.ValidateDates(); err != nil {
		return err
	}
	query := `UPDATE activities SET start_date = ?, end_date = ?, status = ?, progress = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableDate(a.StartDate),
		nullableDate(a.EndDate),
		string(a.Status),
		a.Progress,
		formatTime(a.UpdatedAt),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity %s: %w", a.Code, err)
	}
	return requireAffected(res, "activity", a.ID)
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var start, end domain.Date
	var statusStr, partStr, updatedAtStr string

	err := row.Scan(
		&a.ID, &a.PhaseID, &a.Code, &a.Name, &a.Order, &a.DurationDays,
		&start, &end, &statusStr, &a.Progress, &partStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	a.StartDate = datePtr(start)
	a.EndDate = datePtr(end)
	a.Status = domain.ActivityStatus(statusStr)
	a.ParticipationType = domain.ParticipationType(partStr)
	if a.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &a, nil
}
