package query

import (
	"strings"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// DefaultSearchLimit is the number of matches the entry form shows.
const DefaultSearchLimit = 6

// SearchPersons returns persons whose name, id number or vehicle number
// contains q, ignoring case. A blank query matches nobody.
func SearchPersons(persons []types.Person, q string, limit int) []types.Person {
	q = strings.TrimSpace(q)
	if q == "" {
		return []types.Person{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	out := make([]types.Person, 0, limit)
	for _, p := range persons {
		if containsFold(p.Name, q) || containsFold(p.IDNumber, q) || containsFold(p.VehicleNumber, q) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
