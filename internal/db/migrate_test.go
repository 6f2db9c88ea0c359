package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"planners", "catalog_courses", "programs", "declared_programs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func columns(t *testing.T, db *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var cid, notNull, pk int
		var name, typ string
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		cols[name] = true
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestMigrate_AddedColumns(t *testing.T) {
	db := openTestDB(t)

	assert.True(t, columns(t, db, "catalog_courses")["department"])
	assert.True(t, columns(t, db, "catalog_courses")["prerequisites"])
	assert.True(t, columns(t, db, "planners")["tray"])
}

func TestMigrate_BackfillsTray(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO planners (id, title, data, created_at, updated_at)
		VALUES ('p1', 'Old', '{}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var tray string
	require.NoError(t, db.QueryRow(`SELECT tray FROM planners WHERE id = 'p1'`).Scan(&tray))
	assert.Equal(t, "[]", tray)
}

func TestMigrate_ProgramConstraints(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO programs (id, name, catalog_year, program_type, requirements, created_at, updated_at)
		VALUES (?, 'Computer Science B.S.', '2024-2025', ?, '{}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`

	_, err := db.Exec(insert, "bad", "CERTIFICATE")
	assert.Error(t, err, "unknown program type should be rejected")

	_, err = db.Exec(insert, "p1", "MAJOR")
	require.NoError(t, err)
	_, err = db.Exec(insert, "p2", "MAJOR")
	assert.Error(t, err, "name, catalog year and type are unique")
	_, err = db.Exec(insert, "p3", "MINOR")
	assert.NoError(t, err)
}

func TestMigrate_DeclaredProgramsCascade(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO programs (id, name, program_type, requirements, created_at, updated_at)
		VALUES ('p1', 'Math', 'MINOR', '{}', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO declared_programs (program_id, declared_at) VALUES ('p1', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM programs WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM declared_programs`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_CatalogCreditsCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO catalog_courses (department_code, number, title, credits) VALUES ('CSE', '101', 'X', -1)`)
	assert.Error(t, err)
}
