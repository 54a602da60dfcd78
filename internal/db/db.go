package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// connection pragmas, applied by the driver to every pooled connection.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// OpenDB opens (creating if needed) the SQLite file at path and migrates it.
// ":memory:" opens a private in-memory database on a single connection.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == memoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	db, err := sql.Open("sqlite", path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if memory {
		// Each connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := setup(db, memory); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func setup(db *sql.DB, memory bool) error {
	if !memory {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			return fmt.Errorf("setting WAL mode: %w", err)
		}
	}
	if err := Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
