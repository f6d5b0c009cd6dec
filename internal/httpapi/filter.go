package httpapi

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

const dateOnly = "2006-01-02"

// parseFilter reads FilterOptions from query parameters. Date bounds accept
// RFC 3339 timestamps or plain dates; a plain date_to covers its whole day.
func parseFilter(q url.Values, loc *time.Location) (types.FilterOptions, error) {
	f := types.FilterOptions{
		PersonID:      strings.TrimSpace(q.Get("person_id")),
		PersonName:    strings.TrimSpace(q.Get("person_name")),
		IDNumber:      strings.TrimSpace(q.Get("id_number")),
		VehicleNumber: strings.TrimSpace(q.Get("vehicle_number")),
		SearchQuery:   strings.TrimSpace(q.Get("q")),
	}

	switch a := types.ActionType(q.Get("action_type")); a {
	case "", types.ActionAll, types.ActionEntry, types.ActionExit:
		f.ActionType = a
	default:
		return f, errors.New("action_type must be entry, exit or all")
	}

	if v := q.Get("date_from"); v != "" {
		t, err := parseBound(v, loc, false)
		if err != nil {
			return f, fmt.Errorf("date_from: %w", err)
		}
		f.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := parseBound(v, loc, true)
		if err != nil {
			return f, fmt.Errorf("date_to: %w", err)
		}
		f.DateTo = &t
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return f, errors.New("date_to is before date_from")
	}

	return f, nil
}

func parseBound(v string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateOnly, v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC 3339 or YYYY-MM-DD, got %q", v)
	}
	if endOfDay {
		return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return d, nil
}
