package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/BrandonDHaskell/gatelog/server/internal/db"
)

func openWorkerDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared&%s", t.Name(), db.Pragmas)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	conn.SetMaxOpenConns(1)
	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func putKey(key string) db.TxFn {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value, updated_at_ms) VALUES (?, '[]', 0)`, key)
		return err
	}
}

func countKeys(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestWorker_CommitsAndRollsBack(t *testing.T) {
	conn := openWorkerDB(t)
	w := db.NewWorker(conn)
	defer w.Close()
	ctx := context.Background()

	if err := w.Do(ctx, putKey("gate-persons")); err != nil {
		t.Fatalf("Do: %v", err)
	}

	boom := errors.New("boom")
	err := w.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := putKey("gate-logs")(ctx, tx); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if n := countKeys(t, conn); n != 1 {
		t.Fatalf("expected 1 committed key, got %d", n)
	}
}

func TestWorker_SkipsCancelledJob(t *testing.T) {
	conn := openWorkerDB(t)
	w := db.NewWorker(conn)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := w.Do(ctx, func(context.Context, *sql.Tx) error {
		ran = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran {
		t.Fatal("cancelled job must not run")
	}
}

func TestWorker_DoAfterClose(t *testing.T) {
	conn := openWorkerDB(t)
	w := db.NewWorker(conn)
	w.Close()
	w.Close()

	if err := w.Do(context.Background(), putKey("gate-logs")); !errors.Is(err, db.ErrWorkerClosed) {
		t.Fatalf("expected ErrWorkerClosed, got %v", err)
	}
	if n := countKeys(t, conn); n != 0 {
		t.Fatalf("expected no writes after close, got %d", n)
	}
}
