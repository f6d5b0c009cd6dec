package query

import (
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// ComputeStats derives the dashboard counters from the full log. "Today"
// starts at midnight of now in loc.
//
// CurrentlyInside nets entries against exits per person over all time and
// counts the persons left with a positive balance. It does not look at
// timestamps, so an entry from yesterday without a matching exit still
// counts today.
func ComputeStats(logs []types.EntryLog, now time.Time, loc *time.Location) types.Stats {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var st types.Stats
	visitors := make(map[string]struct{})
	balance := make(map[string]int)

	for _, l := range logs {
		today := !l.Timestamp.Before(midnight)

		switch l.ActionType {
		case types.ActionEntry:
			st.TotalEntries++
			if today {
				st.TodayEntries++
			}
			balance[l.PersonID]++
		case types.ActionExit:
			st.TotalExits++
			if today {
				st.TodayExits++
			}
			balance[l.PersonID]--
		}

		visitors[l.PersonID] = struct{}{}
	}

	st.UniqueVisitors = len(visitors)
	for _, v := range balance {
		if v > 0 {
			st.CurrentlyInside++
		}
	}
	return st
}
