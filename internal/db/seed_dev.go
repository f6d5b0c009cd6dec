package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// PersonsKey is the kv key holding the persons directory.
const PersonsKey = "gate-persons"

type SeedDevOptions struct {
	// Persons replaces the built-in demo directory when non-empty.
	Persons []types.Person
}

// SeedDev writes a demo persons directory when none exists yet. An existing
// directory, even an empty one, is left alone.
func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	now := time.Now().UTC()

	persons := opt.Persons
	if len(persons) == 0 {
		persons = demoPersons(now)
	}

	b, err := json.Marshal(persons)
	if err != nil {
		return fmt.Errorf("seed persons: encode: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO kv(key, value, updated_at_ms)
VALUES (?, ?, ?);`, PersonsKey, string(b), now.UnixMilli()); err != nil {
		return fmt.Errorf("seed persons: %w", err)
	}

	return nil
}

func demoPersons(now time.Time) []types.Person {
	return []types.Person{
		{ID: "seed-guard-1", Name: "Dana Levi", IDNumber: "012345678", Role: "guard", CreatedAt: now},
		{ID: "seed-contractor-1", Name: "Yossi Cohen", IDNumber: "023456789", Role: "contractor", VehicleNumber: "12-345-67", CreatedAt: now},
		{ID: "seed-visitor-1", Name: "Noa Mizrahi", IDNumber: "034567890", Role: "visitor", CreatedAt: now},
	}
}
