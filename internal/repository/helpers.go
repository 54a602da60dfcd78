package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/samplan/internal/domain"
)

// datePtr turns a scanned (possibly zero) date into an optional one.
func datePtr(d domain.Date) *domain.Date {
	if d.IsZero() {
		return nil
	}
	return &d
}

// nullableDate converts a *domain.Date to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableDate(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the int value.
func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
