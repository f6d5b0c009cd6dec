package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store/memory"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// Compile-time check that the memory store satisfies every interface.
var _ store.Backend = (*memory.Store)(nil)

func TestStore_ListLogs_NewestFirst(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	base := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new", "mid"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		if err := s.InsertLog(ctx, types.EntryLog{ID: id, Timestamp: base.Add(offsets[i])}); err != nil {
			t.Fatalf("InsertLog %s: %v", id, err)
		}
	}

	logs, err := s.ListLogs(ctx)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 3 || logs[0].ID != "new" || logs[1].ID != "mid" || logs[2].ID != "old" {
		t.Errorf("expected new, mid, old; got %+v", logs)
	}
}

func TestStore_UpdatePerson_UnknownID(t *testing.T) {
	s := memory.New()
	name := "x"
	if err := s.UpdatePerson(context.Background(), "missing", types.PersonPatch{Name: &name}); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_PruneOlderThan(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

	_ = s.InsertLog(ctx, types.EntryLog{ID: "old", Timestamp: now.AddDate(0, 0, -40)})
	_ = s.InsertLog(ctx, types.EntryLog{ID: "recent", Timestamp: now.AddDate(0, 0, -1)})

	deleted, err := s.PruneOlderThan(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned, got %d", deleted)
	}

	logs, _ := s.ListLogs(ctx)
	if len(logs) != 1 || logs[0].ID != "recent" {
		t.Errorf("expected only the recent log to survive, got %+v", logs)
	}
}

func TestStore_SettingsDefaultUntilSaved(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	st, err := s.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if st != types.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", st)
	}

	want := types.Settings{SuggestHours: 48, RecencyMode: types.RecencyFrequent}
	if err := s.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, _ := s.LoadSettings(ctx)
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
