// Package postgres implements the remote backing store over the hosted
// persons / entry_logs tables. It talks database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DBTX is the subset of database/sql used by Store.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements every store interface against Postgres.
type Store struct {
	db DBTX
}

func New(db DBTX) *Store {
	return &Store{db: db}
}

// Open connects with the pgx driver, pings and applies pending migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// nullable maps an empty optional field to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// setList accumulates "col = $n" assignments for a partial update.
type setList struct {
	cols []string
	args []any
}

func (l *setList) add(col string, v any) {
	l.args = append(l.args, v)
	l.cols = append(l.cols, fmt.Sprintf("%s = $%d", col, len(l.args)))
}

func (l *setList) empty() bool { return len(l.cols) == 0 }

// update builds "UPDATE table SET ... WHERE id = $n" with id as the last arg.
func (l *setList) update(table, id string) (string, []any) {
	args := append(l.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d;", table, strings.Join(l.cols, ", "), len(args))
	return q, args
}
