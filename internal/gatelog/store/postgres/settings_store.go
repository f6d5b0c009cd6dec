package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

const (
	settingSuggestHours = "suggest_hours"
	settingRecencyMode  = "recency_mode"
)

func (s *Store) LoadSettings(ctx context.Context) (types.Settings, error) {
	st := types.DefaultSettings()

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings;`)
	if err != nil {
		return st, fmt.Errorf("select settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return st, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case settingSuggestHours:
			if n, err := strconv.Atoi(value); err == nil {
				st.SuggestHours = n
			}
		case settingRecencyMode:
			st.RecencyMode = types.RecencyMode(value)
		}
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("iterate settings: %w", err)
	}
	return st.Normalize(), nil
}

func (s *Store) SaveSettings(ctx context.Context, st types.Settings) error {
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES ($1, $2), ($3, $4)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`,
		settingSuggestHours, strconv.Itoa(st.SuggestHours),
		settingRecencyMode, string(st.RecencyMode),
	); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
