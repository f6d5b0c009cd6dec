package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/BrandonDHaskell/gatelog/server/internal/db"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store/sqlite"
)

// openTestDB returns an in-memory SQLite connection with the same PRAGMAs
// and schema as production. The connection is closed when the test ends.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Shared cache keeps the database alive while sql.DB recycles its conn.
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared&%s", t.Name(), db.Pragmas)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openTestDB: sql.Open: %v", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: ping: %v", err)
	}
	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// newTestStore returns a Store over conn with its own Worker, closed when
// the test ends.
func newTestStore(t *testing.T, conn *sql.DB) *sqlite.Store {
	t.Helper()

	w := db.NewWorker(conn)
	t.Cleanup(func() { w.Close() })
	return sqlite.New(conn, w)
}

// rawValue reads a kv row directly, bypassing the store.
func rawValue(t *testing.T, conn *sql.DB, key string) string {
	t.Helper()

	var v string
	if err := conn.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&v); err != nil {
		t.Fatalf("rawValue(%s): %v", key, err)
	}
	return v
}

func putRaw(t *testing.T, conn *sql.DB, key, value string) {
	t.Helper()

	if _, err := conn.Exec(`INSERT INTO kv(key, value, updated_at_ms) VALUES (?, ?, 0);`, key, value); err != nil {
		t.Fatalf("putRaw(%s): %v", key, err)
	}
}
