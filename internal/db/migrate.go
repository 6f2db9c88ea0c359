package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Column additions are re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTray(db); err != nil {
		return fmt.Errorf("backfilling planner trays: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS planners (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		data       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_planners_updated ON planners(updated_at)`,

	`CREATE TABLE IF NOT EXISTS catalog_courses (
		department_code  TEXT NOT NULL,
		number           TEXT NOT NULL,
		title            TEXT NOT NULL,
		credits          INTEGER NOT NULL DEFAULT 0 CHECK(credits >= 0),
		description      TEXT NOT NULL DEFAULT '',
		ge               TEXT NOT NULL DEFAULT '[]',
		quarters_offered TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (department_code, number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalog_courses_title ON catalog_courses(title)`,

	`CREATE TABLE IF NOT EXISTS programs (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		catalog_year TEXT NOT NULL DEFAULT '',
		program_type TEXT NOT NULL CHECK(program_type IN ('MAJOR','MINOR')),
		requirements TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		UNIQUE (name, catalog_year, program_type)
	)`,

	`CREATE TABLE IF NOT EXISTS declared_programs (
		program_id  TEXT PRIMARY KEY REFERENCES programs(id) ON DELETE CASCADE,
		declared_at TEXT NOT NULL
	)`,

	// Catalog import carries department names and prerequisite text.
	`ALTER TABLE catalog_courses ADD COLUMN department TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE catalog_courses ADD COLUMN prerequisites TEXT NOT NULL DEFAULT ''`,

	// The custom-course tray is stored with its planner.
	`ALTER TABLE planners ADD COLUMN tray TEXT`,
}

// migrateBackfillTray gives planners created before the tray column an empty
// tray.
func migrateBackfillTray(db *sql.DB) error {
	if _, err := db.Exec(`UPDATE planners SET tray = '[]' WHERE tray IS NULL OR tray = ''`); err != nil {
		return fmt.Errorf("updating planners: %w", err)
	}
	return nil
}
