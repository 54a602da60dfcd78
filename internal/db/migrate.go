package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		short_id      TEXT NOT NULL,
		name          TEXT NOT NULL,
		client        TEXT NOT NULL DEFAULT '',
		kickoff_date  TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'active'
		              CHECK(status IN ('active','closed')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		type        TEXT NOT NULL
		            CHECK(type IN ('PREPARE','CONNECT','REALIZE','RUN')),
		order_index INTEGER NOT NULL,
		UNIQUE(project_id, type)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id                 TEXT PRIMARY KEY,
		phase_id           TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		code               TEXT NOT NULL,
		name               TEXT NOT NULL,
		order_index        INTEGER NOT NULL,
		duration_days      INTEGER NOT NULL CHECK(duration_days >= 0),
		start_date         TEXT,
		end_date           TEXT,
		status             TEXT NOT NULL DEFAULT 'PENDIENTE'
		                   CHECK(status IN ('PENDIENTE','EN_PROGRESO','COMPLETADO','BLOQUEADO')),
		progress           INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		participation_type TEXT NOT NULL
		                   CHECK(participation_type IN ('CONSULTANT','CLIENT','JOINT')),
		updated_at         TEXT NOT NULL,
		UNIQUE(phase_id, code),
		CHECK((duration_days = 0 AND start_date IS NULL AND end_date IS NULL)
		   OR (duration_days > 0 AND start_date IS NOT NULL AND end_date IS NOT NULL AND end_date >= start_date))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_phase ON activities(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_end ON activities(end_date)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		date       TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		recurring  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS blocker_periods (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		kind        TEXT NOT NULL CHECK(kind IN ('BLOCKER','PAUSE')),
		reason      TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT,
		impact_days INTEGER CHECK(impact_days IS NULL OR impact_days >= 0),
		resolved    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_blockers_project ON blocker_periods(project_id)`,

	`CREATE TABLE IF NOT EXISTS audit_log (
		id          TEXT PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		action      TEXT NOT NULL,
		actor       TEXT NOT NULL DEFAULT '',
		payload     TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity_type, entity_id)`,

	// Track which resolved blockers have already shifted the schedule.
	`ALTER TABLE blocker_periods ADD COLUMN applied INTEGER NOT NULL DEFAULT 0`,
}
