package query

import (
	"sort"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// MaxSuggestions bounds the quick-select list.
const MaxSuggestions = 5

// RecentPersons returns up to MaxSuggestions persons who appear in logs no
// older than windowHours before now.
//
// logs are expected newest-first. In RecencyRecent mode persons are taken
// in that order; in RecencyFrequent mode they are ranked by how many logs
// they have inside the window, ties keeping the newest-first order. Ids
// without a matching Person are dropped.
func RecentPersons(
	persons []types.Person,
	logs []types.EntryLog,
	windowHours int,
	mode types.RecencyMode,
	now time.Time,
) []types.Person {
	cutoff := now.Add(-time.Duration(windowHours) * time.Hour)

	var ids []string
	if mode == types.RecencyFrequent {
		ids = frequentIDs(logs, cutoff)
	} else {
		ids = recentIDs(logs, cutoff)
	}

	byID := make(map[string]types.Person, len(persons))
	for _, p := range persons {
		byID[p.ID] = p
	}

	out := make([]types.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func recentIDs(logs []types.EntryLog, cutoff time.Time) []string {
	seen := make(map[string]struct{}, MaxSuggestions)
	ids := make([]string, 0, MaxSuggestions)
	for _, l := range logs {
		if l.Timestamp.Before(cutoff) {
			continue
		}
		if _, ok := seen[l.PersonID]; ok {
			continue
		}
		seen[l.PersonID] = struct{}{}
		ids = append(ids, l.PersonID)
		if len(ids) == MaxSuggestions {
			break
		}
	}
	return ids
}

func frequentIDs(logs []types.EntryLog, cutoff time.Time) []string {
	counts := make(map[string]int)
	var order []string
	for _, l := range logs {
		if l.Timestamp.Before(cutoff) {
			continue
		}
		if _, ok := counts[l.PersonID]; !ok {
			order = append(order, l.PersonID)
		}
		counts[l.PersonID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > MaxSuggestions {
		order = order[:MaxSuggestions]
	}
	return order
}
