// Package query holds the pure derivations over the gate book: log
// filtering, quick-select suggestions and the dashboard counters. None of
// the functions mutate their inputs or fail.
package query

import (
	"strings"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// FilterLogs returns the logs that satisfy every constraint in f, in their
// original order.
//
// A non-empty SearchQuery replaces the person name, id number and vehicle
// number checks: the log matches when the query occurs in any of the three.
// Date, person id and action type constraints still apply.
func FilterLogs(logs []types.EntryLog, f types.FilterOptions) []types.EntryLog {
	out := make([]types.EntryLog, 0, len(logs))
	for _, l := range logs {
		if matches(l, f) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l types.EntryLog, f types.FilterOptions) bool {
	if f.DateFrom != nil && l.Timestamp.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && l.Timestamp.After(*f.DateTo) {
		return false
	}
	if f.PersonID != "" && l.PersonID != f.PersonID {
		return false
	}
	if f.ActionType != "" && f.ActionType != types.ActionAll && l.ActionType != f.ActionType {
		return false
	}

	if f.SearchQuery != "" {
		return containsFold(l.PersonName, f.SearchQuery) ||
			containsFold(l.IDNumber, f.SearchQuery) ||
			containsFold(l.VehicleNumber, f.SearchQuery)
	}

	if f.PersonName != "" && !containsFold(l.PersonName, f.PersonName) {
		return false
	}
	if f.IDNumber != "" && !containsFold(l.IDNumber, f.IDNumber) {
		return false
	}
	if f.VehicleNumber != "" && !containsFold(l.VehicleNumber, f.VehicleNumber) {
		return false
	}
	return true
}

// containsFold reports whether sub occurs in s ignoring case. An empty s
// never matches, so a log without a vehicle number cannot satisfy a
// vehicle filter.
func containsFold(s, sub string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
