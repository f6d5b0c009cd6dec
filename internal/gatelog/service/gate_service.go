// Package service holds the Entity Store: the canonical in-memory persons
// directory and activity log, kept in step with a backing store.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/export"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
	"github.com/BrandonDHaskell/gatelog/server/internal/logging"
)

// Archiver stores an export payload somewhere durable.
type Archiver interface {
	Store(ctx context.Context, now time.Time, payload []byte) (export.Archive, error)
}

type Options struct {
	// Location decides what "today" means for stats and how exports render
	// dates. Defaults to time.Local.
	Location *time.Location

	// Archiver is optional; without it ArchiveExport reports
	// export.ErrArchiveDisabled.
	Archiver Archiver

	Logger logging.Logger

	// Now and NewID are overridable in tests.
	Now   func() time.Time
	NewID func() string
}

// GateService owns persons, logs and settings. Every mutation writes the
// backing store first and only then touches memory, so a failed write
// leaves the in-memory view unchanged.
type GateService struct {
	backend  store.Backend
	loc      *time.Location
	archiver Archiver
	log      logging.Logger
	now      func() time.Time
	newID    func() string

	// writeMu serializes mutations end to end; mu guards the fields below
	// it so reads never wait on backing-store I/O.
	writeMu  sync.Mutex
	mu       sync.RWMutex
	persons  []types.Person
	logs     []types.EntryLog // newest first
	settings types.Settings
	loaded   bool

	subMu     sync.Mutex
	nextSub   int
	listeners map[int]func(types.Change)
}

func NewGateService(backend store.Backend, opts Options) *GateService {
	s := &GateService{
		backend:   backend,
		loc:       opts.Location,
		archiver:  opts.Archiver,
		log:       opts.Logger,
		now:       opts.Now,
		newID:     opts.NewID,
		persons:   []types.Person{},
		logs:      []types.EntryLog{},
		settings:  types.DefaultSettings(),
		listeners: map[int]func(types.Change){},
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	s.log = s.log.With("module", "gate_service")
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Load replaces the in-memory state with the backing store's contents.
func (s *GateService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	persons, err := s.backend.ListPersons(ctx)
	if err != nil {
		return fmt.Errorf("load persons: %w", err)
	}
	logs, err := s.backend.ListLogs(ctx)
	if err != nil {
		return fmt.Errorf("load logs: %w", err)
	}
	settings, err := s.backend.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	sortNewestFirst(logs)

	s.mu.Lock()
	s.persons = persons
	s.logs = logs
	s.settings = settings.Normalize()
	s.loaded = true
	s.mu.Unlock()

	s.log.Info(ctx, "gate book loaded", "persons", len(persons), "logs", len(logs))
	return nil
}

func (s *GateService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Subscribe registers fn for every committed change. Listeners run on the
// mutating goroutine after the change is visible to readers. The returned
// func removes the listener.
func (s *GateService) Subscribe(fn func(types.Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.listeners, id)
		s.subMu.Unlock()
	}
}

// mutate runs fn under writeMu and then delivers the changes it reports.
func (s *GateService) mutate(fn func() ([]types.Change, error)) error {
	s.writeMu.Lock()
	changes, err := fn()
	s.writeMu.Unlock()

	for _, c := range changes {
		s.emit(c)
	}
	return err
}

func (s *GateService) emit(c types.Change) {
	s.subMu.Lock()
	fns := make([]func(types.Change), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

func (s *GateService) change(entity, op, id string) types.Change {
	return types.Change{Entity: entity, Op: op, ID: id, At: s.now()}
}

func sortNewestFirst(logs []types.EntryLog) {
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
}
