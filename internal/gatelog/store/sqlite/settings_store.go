package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// LoadSettings reads the two scalar keys. Missing or unparseable values
// fall back to the defaults.
func (s *Store) LoadSettings(ctx context.Context) (types.Settings, error) {
	st := types.DefaultSettings()

	hours, ok, err := getValue(ctx, s.db, KeySuggestHours)
	if err != nil {
		return st, err
	}
	if ok {
		if n, err := strconv.Atoi(hours); err == nil {
			st.SuggestHours = n
		}
	}

	mode, ok, err := getValue(ctx, s.db, KeySuggestMode)
	if err != nil {
		return st, err
	}
	if ok {
		st.RecencyMode = types.RecencyMode(mode)
	}

	return st.Normalize(), nil
}

func (s *Store) SaveSettings(ctx context.Context, st types.Settings) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := putValue(ctx, tx, KeySuggestHours, strconv.Itoa(st.SuggestHours)); err != nil {
			return err
		}
		return putValue(ctx, tx, KeySuggestMode, string(st.RecencyMode))
	})
}
