package service

import (
	"context"
	"fmt"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func (s *GateService) Settings() types.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *GateService) UpdateSettings(ctx context.Context, patch types.SettingsPatch) (types.Settings, error) {
	if patch.SuggestHours != nil {
		h := *patch.SuggestHours
		if h < types.MinSuggestHours || h > types.MaxSuggestHours {
			return types.Settings{}, invalid("suggest_hours",
				fmt.Sprintf("must be between %d and %d", types.MinSuggestHours, types.MaxSuggestHours))
		}
	}
	if patch.RecencyMode != nil && !patch.RecencyMode.Valid() {
		return types.Settings{}, invalid("recency_mode", "must be recent or frequent")
	}

	var next types.Settings
	err := s.mutate(func() ([]types.Change, error) {
		next = s.Settings()
		if patch.SuggestHours == nil && patch.RecencyMode == nil {
			return nil, nil
		}
		if patch.SuggestHours != nil {
			next.SuggestHours = *patch.SuggestHours
		}
		if patch.RecencyMode != nil {
			next.RecencyMode = *patch.RecencyMode
		}

		if err := s.backend.SaveSettings(ctx, next); err != nil {
			return nil, fmt.Errorf("save settings: %w", err)
		}

		s.mu.Lock()
		s.settings = next
		s.mu.Unlock()

		return []types.Change{s.change(types.EntitySettings, types.OpUpdated, "")}, nil
	})
	if err != nil {
		return types.Settings{}, err
	}
	return next, nil
}
