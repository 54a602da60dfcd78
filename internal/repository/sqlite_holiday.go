package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) Create(ctx context.Context, h *domain.Holiday) (bool, error) {
	if h.Date.IsZero() {
		return false, domain.NewInvalidInput("date", "is required")
	}
	query := `INSERT OR IGNORE INTO holidays (date, name, recurring, created_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, h.Date, h.Name, boolToInt(h.Recurring), formatTime(h.CreatedAt))
	if err != nil {
		return false, fmt.Errorf("inserting holiday %s: %w", h.Date, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking holiday rows: %w", err)
	}
	return n > 0, nil
}

// ListByYears returns the holidays falling in any of years, by date.
func (r *SQLiteHolidayRepo) ListByYears(ctx context.Context, years []int) ([]domain.Holiday, error) {
	if len(years) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(years))
	args := make([]any, len(years))
	for i, y := range years {
		placeholders[i] = "?"
		args[i] = fmt.Sprintf("%04d", y)
	}
	query := `SELECT date, name, recurring, created_at FROM holidays
		WHERE substr(date, 1, 4) IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var holidays []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var recurring int
		var createdAtStr string
		if err := rows.Scan(&h.Date, &h.Name, &recurring, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		h.Recurring = intToBool(recurring)
		if h.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return holidays, nil
}

func (r *SQLiteHolidayRepo) Delete(ctx context.Context, date domain.Date) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	return requireAffected(res, "holiday", date.String())
}
