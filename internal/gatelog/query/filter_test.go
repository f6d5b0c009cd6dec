package query_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/query"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func sampleLogs() []types.EntryLog {
	return []types.EntryLog{
		{ID: "l4", PersonID: "p2", PersonName: "Dana Levi", IDNumber: "123456789", VehicleNumber: "12-345-67",
			ActionType: types.ActionExit, Timestamp: base.Add(3 * time.Hour)},
		{ID: "l3", PersonID: "p1", PersonName: "Avi Cohen", IDNumber: "987654321",
			ActionType: types.ActionEntry, Timestamp: base.Add(2 * time.Hour)},
		{ID: "l2", PersonID: "p2", PersonName: "Dana Levi", IDNumber: "123456789", VehicleNumber: "12-345-67",
			ActionType: types.ActionEntry, Timestamp: base.Add(1 * time.Hour)},
		{ID: "l1", PersonID: "p3", PersonName: "Noa Bar", IDNumber: "555000111", VehicleNumber: "AB-99",
			ActionType: types.ActionEntry, Timestamp: base},
	}
}

func TestFilterLogs_EmptyFilterReturnsAll(t *testing.T) {
	logs := sampleLogs()

	got := query.FilterLogs(logs, types.FilterOptions{ActionType: types.ActionAll})

	if diff := cmp.Diff(logs, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestFilterLogs_Fields(t *testing.T) {
	from := base.Add(1 * time.Hour)
	to := base.Add(2 * time.Hour)

	tests := []struct {
		name string
		f    types.FilterOptions
		want []string
	}{
		{"date range inclusive", types.FilterOptions{DateFrom: &from, DateTo: &to}, []string{"l3", "l2"}},
		{"date from only", types.FilterOptions{DateFrom: &to}, []string{"l4", "l3"}},
		{"person id exact", types.FilterOptions{PersonID: "p2"}, []string{"l4", "l2"}},
		{"person id no partial match", types.FilterOptions{PersonID: "p"}, []string{}},
		{"name case-insensitive", types.FilterOptions{PersonName: "dana"}, []string{"l4", "l2"}},
		{"id number substring", types.FilterOptions{IDNumber: "5432"}, []string{"l3"}},
		{"vehicle case-insensitive", types.FilterOptions{VehicleNumber: "ab"}, []string{"l1"}},
		{"vehicle skips logs without vehicle", types.FilterOptions{VehicleNumber: "-"}, []string{"l4", "l2", "l1"}},
		{"action entry", types.FilterOptions{ActionType: types.ActionEntry}, []string{"l3", "l2", "l1"}},
		{"action exit", types.FilterOptions{ActionType: types.ActionExit}, []string{"l4"}},
		{"conjunction", types.FilterOptions{PersonID: "p2", ActionType: types.ActionEntry}, []string{"l2"}},
		{"no match", types.FilterOptions{PersonName: "nobody"}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := query.FilterLogs(sampleLogs(), tc.f)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestFilterLogs_SearchQueryMatchesAnyField(t *testing.T) {
	tests := []struct {
		q    string
		want []string
	}{
		{"123", []string{"l4", "l2"}},
		{"COHEN", []string{"l3"}},
		{"ab-9", []string{"l1"}},
	}
	for _, tc := range tests {
		got := query.FilterLogs(sampleLogs(), types.FilterOptions{ActionType: types.ActionAll, SearchQuery: tc.q})
		assert.Equal(t, tc.want, ids(got), "query %q", tc.q)
	}
}

func TestFilterLogs_SearchQueryIgnoresActionOfLog(t *testing.T) {
	// Both the entry and the exit of id number 123456789 match.
	got := query.FilterLogs(sampleLogs(), types.FilterOptions{SearchQuery: "123"})
	assert.Equal(t, []string{"l4", "l2"}, ids(got))
}

func TestFilterLogs_SearchQueryReplacesFieldChecks(t *testing.T) {
	// The name filter would reject l1, but a search query takes its place.
	got := query.FilterLogs(sampleLogs(), types.FilterOptions{PersonName: "dana", SearchQuery: "noa"})
	assert.Equal(t, []string{"l1"}, ids(got))
}

func TestFilterLogs_SearchQueryKeepsOtherConstraints(t *testing.T) {
	got := query.FilterLogs(sampleLogs(), types.FilterOptions{
		ActionType:  types.ActionExit,
		SearchQuery: "123",
	})
	assert.Equal(t, []string{"l4"}, ids(got))
}

func TestFilterLogs_DoesNotMutateInput(t *testing.T) {
	logs := sampleLogs()
	before := sampleLogs()

	_ = query.FilterLogs(logs, types.FilterOptions{PersonID: "p1"})

	if diff := cmp.Diff(before, logs); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestFilterLogs_EmptyInput(t *testing.T) {
	got := query.FilterLogs(nil, types.FilterOptions{SearchQuery: "x"})
	assert.Empty(t, got)
}
