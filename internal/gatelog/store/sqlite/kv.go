package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/gatelog/server/internal/db"
)

// Keys of the kv table. They match the browser local-storage layout so an
// exported storage dump can be imported row for row.
const (
	KeyPersons      = dbpkg.PersonsKey
	KeyLogs         = "gate-logs"
	KeySuggestHours = "gate-suggest-hours"
	KeySuggestMode  = "gate-suggest-mode"
)

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// getValue returns the raw value stored under key. ok is false when the key
// has never been written.
func getValue(ctx context.Context, q queryer, key string) (value string, ok bool, err error) {
	err = q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func putValue(ctx context.Context, tx *sql.Tx, key, value string) error {
	if _, err := tx.ExecContext(ctx, `
INSERT INTO kv(key, value, updated_at_ms) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value = excluded.value,
  updated_at_ms = excluded.updated_at_ms;
`, key, value, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// getArray decodes the JSON array under key into dst. A missing key leaves
// dst untouched.
func getArray(ctx context.Context, q queryer, key string, dst any) error {
	raw, ok, err := getValue(ctx, q, key)
	if err != nil || !ok {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func putArray(ctx context.Context, tx *sql.Tx, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return putValue(ctx, tx, key, string(b))
}
