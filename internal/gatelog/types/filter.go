package types

import "time"

// FilterOptions selects a subsequence of the activity log. Zero values
// impose no constraint.
type FilterOptions struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	PersonID      string
	PersonName    string
	IDNumber      string
	VehicleNumber string
	ActionType    ActionType
	SearchQuery   string
}

type Stats struct {
	TotalEntries    int `json:"totalEntries"`
	TotalExits      int `json:"totalExits"`
	UniqueVisitors  int `json:"uniqueVisitors"`
	TodayEntries    int `json:"todayEntries"`
	TodayExits      int `json:"todayExits"`
	CurrentlyInside int `json:"currentlyInside"`
}
