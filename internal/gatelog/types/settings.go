package types

type RecencyMode string

const (
	RecencyRecent   RecencyMode = "recent"
	RecencyFrequent RecencyMode = "frequent"
)

func (m RecencyMode) Valid() bool {
	return m == RecencyRecent || m == RecencyFrequent
}

const (
	DefaultSuggestHours = 24
	MinSuggestHours     = 1
	MaxSuggestHours     = 168
)

// Settings are the operator preferences for quick-select suggestions.
type Settings struct {
	SuggestHours int         `json:"suggestHours"`
	RecencyMode  RecencyMode `json:"recencyMode"`
}

func DefaultSettings() Settings {
	return Settings{SuggestHours: DefaultSuggestHours, RecencyMode: RecencyRecent}
}

// Normalize replaces out-of-range values with defaults.
func (s Settings) Normalize() Settings {
	if s.SuggestHours < MinSuggestHours || s.SuggestHours > MaxSuggestHours {
		s.SuggestHours = DefaultSuggestHours
	}
	if !s.RecencyMode.Valid() {
		s.RecencyMode = RecencyRecent
	}
	return s
}

type SettingsPatch struct {
	SuggestHours *int         `json:"suggest_hours,omitempty"`
	RecencyMode  *RecencyMode `json:"recency_mode,omitempty"`
}
