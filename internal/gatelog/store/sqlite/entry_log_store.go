package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// ListLogs returns the stored array sorted newest first. New logs are
// prepended on insert, so the sort only matters after timestamp edits.
func (s *Store) ListLogs(ctx context.Context) ([]types.EntryLog, error) {
	logs := []types.EntryLog{}
	if err := getArray(ctx, s.db, KeyLogs, &logs); err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	return logs, nil
}

func (s *Store) InsertLog(ctx context.Context, l types.EntryLog) error {
	return s.mutateLogs(ctx, func(logs []types.EntryLog) ([]types.EntryLog, error) {
		return append([]types.EntryLog{l}, logs...), nil
	})
}

func (s *Store) UpdateLog(ctx context.Context, id string, patch types.EntryLogPatch) error {
	return s.mutateLogs(ctx, func(logs []types.EntryLog) ([]types.EntryLog, error) {
		for i := range logs {
			if logs[i].ID == id {
				patch.Apply(&logs[i])
				return logs, nil
			}
		}
		return nil, store.ErrNotFound
	})
}

func (s *Store) DeleteLog(ctx context.Context, id string) error {
	return s.mutateLogs(ctx, func(logs []types.EntryLog) ([]types.EntryLog, error) {
		for i := range logs {
			if logs[i].ID == id {
				return append(logs[:i], logs[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
}

// PruneOlderThan drops every log whose timestamp is before cutoff and
// reports how many were removed.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.mutateLogs(ctx, func(logs []types.EntryLog) ([]types.EntryLog, error) {
		kept := make([]types.EntryLog, 0, len(logs))
		for _, l := range logs {
			if l.Timestamp.Before(cutoff) {
				deleted++
				continue
			}
			kept = append(kept, l)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *Store) mutateLogs(ctx context.Context, fn func([]types.EntryLog) ([]types.EntryLog, error)) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		logs := []types.EntryLog{}
		if err := getArray(ctx, tx, KeyLogs, &logs); err != nil {
			return err
		}
		next, err := fn(logs)
		if err != nil {
			return err
		}
		return putArray(ctx, tx, KeyLogs, next)
	})
}
