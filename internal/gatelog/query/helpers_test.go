package query_test

import (
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func logAt(id, personID string, action types.ActionType, at time.Time) types.EntryLog {
	return types.EntryLog{
		ID:         id,
		PersonID:   personID,
		PersonName: "Person " + personID,
		IDNumber:   "ID-" + personID,
		ActionType: action,
		Timestamp:  at,
	}
}

func ids(logs []types.EntryLog) []string {
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.ID)
	}
	return out
}

func personIDs(ps []types.Person) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
