package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, short_id, name, client, kickoff_date, status, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		p.Client,
		p.KickoffDate,
		string(p.Status),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE UPPER(short_id) = UPPER(?)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, shortID), shortID)
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeClosed bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status = 'active' ORDER BY kickoff_date, short_id`
	if includeClosed {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY kickoff_date, short_id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET short_id = ?, name = ?, client = ?, kickoff_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		p.Client,
		p.KickoffDate,
		string(p.Status),
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

// Delete removes the project; phases, activities and blockers cascade.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) scanOne(row *sql.Row, ref string) (*domain.Project, error) {
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "project", ID: ref}
	}
	return p, err
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID, &p.ShortID, &p.Name, &p.Client,
		&p.KickoffDate, &statusStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	if p.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}

// requireAffected turns a zero-row write into a NotFoundError.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows: %w", entity, err)
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}
