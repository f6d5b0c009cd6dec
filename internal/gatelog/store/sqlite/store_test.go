package sqlite_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/db"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store/sqlite"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

var _ store.Backend = (*sqlite.Store)(nil)

var t0 = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func TestPersons_EmptyDatabase(t *testing.T) {
	s := newTestStore(t, openTestDB(t))

	persons, err := s.ListPersons(context.Background())
	if err != nil {
		t.Fatalf("ListPersons: %v", err)
	}
	if persons == nil || len(persons) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", persons)
	}
}

func TestPersons_InsertUpdateDelete(t *testing.T) {
	conn := openTestDB(t)
	s := newTestStore(t, conn)
	ctx := context.Background()

	for _, p := range []types.Person{
		{ID: "p1", Name: "Dana", IDNumber: "111", CreatedAt: t0},
		{ID: "p2", Name: "Avi", IDNumber: "222", VehicleNumber: "12-345-67", CreatedAt: t0},
	} {
		if err := s.InsertPerson(ctx, p); err != nil {
			t.Fatalf("InsertPerson %s: %v", p.ID, err)
		}
	}

	role := "guard"
	if err := s.UpdatePerson(ctx, "p1", types.PersonPatch{Role: &role}); err != nil {
		t.Fatalf("UpdatePerson: %v", err)
	}
	if err := s.DeletePerson(ctx, "p2"); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}

	persons, err := s.ListPersons(ctx)
	if err != nil {
		t.Fatalf("ListPersons: %v", err)
	}
	if len(persons) != 1 || persons[0].ID != "p1" || persons[0].Role != "guard" {
		t.Fatalf("unexpected persons: %+v", persons)
	}

	// The stored document uses the camelCase local-storage field names.
	raw := rawValue(t, conn, sqlite.KeyPersons)
	if !strings.Contains(raw, `"idNumber":"111"`) || !strings.Contains(raw, `"createdAt":"2026-02-15T12:00:00Z"`) {
		t.Errorf("unexpected stored document: %s", raw)
	}
}

func TestPersons_UnknownIDLeavesDocumentUntouched(t *testing.T) {
	conn := openTestDB(t)
	s := newTestStore(t, conn)
	ctx := context.Background()

	if err := s.InsertPerson(ctx, types.Person{ID: "p1", Name: "Dana", IDNumber: "111", CreatedAt: t0}); err != nil {
		t.Fatalf("InsertPerson: %v", err)
	}
	before := rawValue(t, conn, sqlite.KeyPersons)

	name := "Other"
	if err := s.UpdatePerson(ctx, "missing", types.PersonPatch{Name: &name}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdatePerson: expected ErrNotFound, got %v", err)
	}
	if err := s.DeletePerson(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeletePerson: expected ErrNotFound, got %v", err)
	}

	if after := rawValue(t, conn, sqlite.KeyPersons); after != before {
		t.Errorf("document changed:\nbefore %s\nafter  %s", before, after)
	}
}

func TestPersons_CorruptDocument(t *testing.T) {
	conn := openTestDB(t)
	putRaw(t, conn, sqlite.KeyPersons, "{not json")
	s := newTestStore(t, conn)

	if _, err := s.ListPersons(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLogs_PrependAndNewestFirst(t *testing.T) {
	s := newTestStore(t, openTestDB(t))
	ctx := context.Background()

	for i, id := range []string{"l1", "l2", "l3"} {
		l := types.EntryLog{ID: id, PersonName: "Dana", IDNumber: "111", ActionType: types.ActionEntry, Timestamp: t0.Add(time.Duration(i) * time.Minute)}
		if err := s.InsertLog(ctx, l); err != nil {
			t.Fatalf("InsertLog %s: %v", id, err)
		}
	}

	// Moving l1 forward in time must move it to the front.
	later := t0.Add(time.Hour)
	if err := s.UpdateLog(ctx, "l1", types.EntryLogPatch{Timestamp: &later}); err != nil {
		t.Fatalf("UpdateLog: %v", err)
	}

	logs, err := s.ListLogs(ctx)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	got := []string{}
	for _, l := range logs {
		got = append(got, l.ID)
	}
	if strings.Join(got, ",") != "l1,l3,l2" {
		t.Errorf("expected l1,l3,l2; got %v", got)
	}
}

func TestLogs_DeleteAndPrune(t *testing.T) {
	s := newTestStore(t, openTestDB(t))
	ctx := context.Background()

	_ = s.InsertLog(ctx, types.EntryLog{ID: "ancient", ActionType: types.ActionEntry, Timestamp: t0.AddDate(0, 0, -90)})
	_ = s.InsertLog(ctx, types.EntryLog{ID: "old", ActionType: types.ActionExit, Timestamp: t0.AddDate(0, 0, -31)})
	_ = s.InsertLog(ctx, types.EntryLog{ID: "fresh", ActionType: types.ActionEntry, Timestamp: t0})

	if err := s.DeleteLog(ctx, "ancient"); err != nil {
		t.Fatalf("DeleteLog: %v", err)
	}
	if err := s.DeleteLog(ctx, "ancient"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second DeleteLog: expected ErrNotFound, got %v", err)
	}

	deleted, err := s.PruneOlderThan(ctx, t0.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned, got %d", deleted)
	}

	logs, _ := s.ListLogs(ctx)
	if len(logs) != 1 || logs[0].ID != "fresh" {
		t.Errorf("expected only fresh to remain, got %+v", logs)
	}
}

func TestLogs_ReadsLocalStorageDump(t *testing.T) {
	conn := openTestDB(t)
	putRaw(t, conn, sqlite.KeyLogs, `[{"id":"a","personId":"","personName":"Guest","idNumber":"9","actionType":"exit","timestamp":"2026-02-15T10:00:00.000Z"}]`)
	s := newTestStore(t, conn)

	logs, err := s.ListLogs(context.Background())
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].ActionType != types.ActionExit || !logs[0].Timestamp.Equal(t0.Add(-2*time.Hour)) {
		t.Errorf("unexpected logs: %+v", logs)
	}
}

func TestSettings_DefaultsAndRoundTrip(t *testing.T) {
	s := newTestStore(t, openTestDB(t))
	ctx := context.Background()

	st, err := s.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if st != types.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", st)
	}

	want := types.Settings{SuggestHours: 72, RecencyMode: types.RecencyFrequent}
	if err := s.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if got, _ := s.LoadSettings(ctx); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSettings_UnparseableFallsBack(t *testing.T) {
	conn := openTestDB(t)
	putRaw(t, conn, sqlite.KeySuggestHours, "abc")
	putRaw(t, conn, sqlite.KeySuggestMode, "sometimes")
	s := newTestStore(t, conn)

	st, err := s.LoadSettings(context.Background())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if st != types.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", st)
	}
}

func TestSeedDev_OnlyWhenMissing(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	if err := db.SeedDev(ctx, conn, db.SeedDevOptions{}); err != nil {
		t.Fatalf("SeedDev: %v", err)
	}
	var seeded []types.Person
	if err := json.Unmarshal([]byte(rawValue(t, conn, sqlite.KeyPersons)), &seeded); err != nil {
		t.Fatalf("decode seeded persons: %v", err)
	}
	if len(seeded) == 0 {
		t.Fatal("expected demo persons")
	}

	custom := []types.Person{{ID: "x", Name: "X", IDNumber: "0"}}
	if err := db.SeedDev(ctx, conn, db.SeedDevOptions{Persons: custom}); err != nil {
		t.Fatalf("second SeedDev: %v", err)
	}

	s := newTestStore(t, conn)
	persons, _ := s.ListPersons(ctx)
	if len(persons) != len(seeded) {
		t.Errorf("existing directory was overwritten: %+v", persons)
	}
}
