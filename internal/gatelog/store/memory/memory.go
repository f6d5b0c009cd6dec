package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// Store keeps persons, logs and settings in process memory. It is intended
// for tests and throwaway dev runs.
type Store struct {
	mu       sync.RWMutex
	persons  []types.Person
	logs     []types.EntryLog
	settings *types.Settings
}

func New() *Store {
	return &Store{}
}

func (s *Store) ListPersons(_ context.Context) ([]types.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Person, len(s.persons))
	copy(out, s.persons)
	return out, nil
}

func (s *Store) InsertPerson(_ context.Context, p types.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons = append(s.persons, p)
	return nil
}

func (s *Store) UpdatePerson(_ context.Context, id string, patch types.PersonPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.persons {
		if s.persons[i].ID == id {
			patch.Apply(&s.persons[i])
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeletePerson(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.persons {
		if s.persons[i].ID == id {
			s.persons = append(s.persons[:i], s.persons[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListLogs(_ context.Context) ([]types.EntryLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.EntryLog, len(s.logs))
	copy(out, s.logs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *Store) InsertLog(_ context.Context, l types.EntryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, l)
	return nil
}

func (s *Store) UpdateLog(_ context.Context, id string, patch types.EntryLogPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		if s.logs[i].ID == id {
			patch.Apply(&s.logs[i])
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteLog(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		if s.logs[i].ID == id {
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.logs[:0]
	var deleted int64
	for _, l := range s.logs {
		if l.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, l)
	}
	s.logs = kept
	return deleted, nil
}

func (s *Store) LoadSettings(_ context.Context) (types.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return types.DefaultSettings(), nil
	}
	return *s.settings, nil
}

func (s *Store) SaveSettings(_ context.Context, st types.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &st
	return nil
}
