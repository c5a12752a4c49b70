// Package dbtest opens throwaway in-memory stores for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"flixnet/pkg/database"
)

// Open returns a migrated in-memory SQLite database closed at test end.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// InsertUser adds a user row directly, bypassing password hashing.
func InsertUser(t testing.TB, db *sql.DB, username, email string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, 'x') RETURNING id`,
		username, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func InsertMovie(t testing.TB, db *sql.DB, title, genre string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO movies (title, genre) VALUES ($1, $2) RETURNING id`,
		title, genre).Scan(&id)
	if err != nil {
		t.Fatalf("insert movie: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table.
func CountRows(t testing.TB, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

