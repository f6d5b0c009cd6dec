package store

import (
	"context"
	"errors"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// ErrNotFound is returned by update and delete when no row has the id.
var ErrNotFound = errors.New("not found")

// PersonStore persists the persons directory.
type PersonStore interface {
	ListPersons(ctx context.Context) ([]types.Person, error)
	InsertPerson(ctx context.Context, p types.Person) error
	UpdatePerson(ctx context.Context, id string, patch types.PersonPatch) error
	DeletePerson(ctx context.Context, id string) error
}

// EntryLogStore persists the activity log. ListLogs returns newest first.
type EntryLogStore interface {
	ListLogs(ctx context.Context) ([]types.EntryLog, error)
	InsertLog(ctx context.Context, l types.EntryLog) error
	UpdateLog(ctx context.Context, id string, patch types.EntryLogPatch) error
	DeleteLog(ctx context.Context, id string) error
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SettingsStore persists operator preferences. A store with nothing saved
// returns types.DefaultSettings.
type SettingsStore interface {
	LoadSettings(ctx context.Context) (types.Settings, error)
	SaveSettings(ctx context.Context, s types.Settings) error
}

// Backend bundles the three stores of one persistence medium.
type Backend interface {
	PersonStore
	EntryLogStore
	SettingsStore
}
