package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// Logs returns a copy of the activity log, newest first.
func (s *GateService) Logs() []types.EntryLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.EntryLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *GateService) CreateLog(ctx context.Context, nl types.NewEntryLog) (types.EntryLog, error) {
	nl = trimNewLog(nl)
	if err := validateNewLog(nl); err != nil {
		return types.EntryLog{}, err
	}

	var l types.EntryLog
	err := s.mutate(func() ([]types.Change, error) {
		var err error
		l, err = s.insertLog(ctx, nl)
		if err != nil {
			return nil, err
		}
		return []types.Change{s.change(types.EntityLog, types.OpCreated, l.ID)}, nil
	})
	return l, err
}

// insertLog must be called with writeMu held.
func (s *GateService) insertLog(ctx context.Context, nl types.NewEntryLog) (types.EntryLog, error) {
	l := types.EntryLog{
		ID:            s.newID(),
		PersonID:      nl.PersonID,
		PersonName:    nl.PersonName,
		IDNumber:      nl.IDNumber,
		Role:          nl.Role,
		VehicleNumber: nl.VehicleNumber,
		ActionType:    nl.ActionType,
		Timestamp:     s.now(),
		Note:          nl.Note,
	}
	if err := s.backend.InsertLog(ctx, l); err != nil {
		return types.EntryLog{}, fmt.Errorf("insert log: %w", err)
	}

	s.mu.Lock()
	s.logs = append([]types.EntryLog{l}, s.logs...)
	s.mu.Unlock()

	s.log.Info(ctx, "log created", "log_id", l.ID, "person_id", l.PersonID, "action", l.ActionType)
	return l, nil
}

func (s *GateService) UpdateLog(ctx context.Context, id string, patch types.EntryLogPatch) (types.EntryLog, error) {
	patch = trimLogPatch(patch)
	if err := validateLogPatch(patch); err != nil {
		return types.EntryLog{}, err
	}

	var updated types.EntryLog
	err := s.mutate(func() ([]types.Change, error) {
		s.mu.RLock()
		i := s.logIndex(id)
		if i >= 0 {
			updated = s.logs[i]
		}
		s.mu.RUnlock()
		if i < 0 {
			return nil, ErrLogNotFound
		}
		if patch.IsEmpty() {
			return nil, nil
		}

		if err := s.backend.UpdateLog(ctx, id, patch); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrLogNotFound
			}
			return nil, fmt.Errorf("update log %s: %w", id, err)
		}

		patch.Apply(&updated)
		s.mu.Lock()
		if i := s.logIndex(id); i >= 0 {
			s.logs[i] = updated
			if patch.Timestamp != nil {
				sortNewestFirst(s.logs)
			}
		}
		s.mu.Unlock()

		return []types.Change{s.change(types.EntityLog, types.OpUpdated, id)}, nil
	})
	if err != nil {
		return types.EntryLog{}, err
	}
	return updated, nil
}

func (s *GateService) DeleteLog(ctx context.Context, id string) error {
	return s.mutate(func() ([]types.Change, error) {
		s.mu.RLock()
		found := s.logIndex(id) >= 0
		s.mu.RUnlock()
		if !found {
			return nil, ErrLogNotFound
		}

		if err := s.backend.DeleteLog(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrLogNotFound
			}
			return nil, fmt.Errorf("delete log %s: %w", id, err)
		}

		s.mu.Lock()
		if i := s.logIndex(id); i >= 0 {
			s.logs = append(s.logs[:i], s.logs[i+1:]...)
		}
		s.mu.Unlock()

		s.log.Info(ctx, "log deleted", "log_id", id)
		return []types.Change{s.change(types.EntityLog, types.OpDeleted, id)}, nil
	})
}

// PruneLogsOlderThan deletes logs stamped before cutoff from the backing
// store and from memory.
func (s *GateService) PruneLogsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.mutate(func() ([]types.Change, error) {
		n, err := s.backend.PruneOlderThan(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("prune logs: %w", err)
		}

		s.mu.Lock()
		kept := make([]types.EntryLog, 0, len(s.logs))
		for _, l := range s.logs {
			if !l.Timestamp.Before(cutoff) {
				kept = append(kept, l)
			}
		}
		s.logs = kept
		s.mu.Unlock()

		deleted = n
		if n == 0 {
			return nil, nil
		}
		c := s.change(types.EntityLog, types.OpPruned, "")
		c.Count = n
		return []types.Change{c}, nil
	})
	return deleted, err
}

// logIndex must be called with mu held.
func (s *GateService) logIndex(id string) int {
	for i := range s.logs {
		if s.logs[i].ID == id {
			return i
		}
	}
	return -1
}

func trimNewLog(nl types.NewEntryLog) types.NewEntryLog {
	nl.PersonID = strings.TrimSpace(nl.PersonID)
	nl.PersonName = strings.TrimSpace(nl.PersonName)
	nl.IDNumber = strings.TrimSpace(nl.IDNumber)
	nl.Role = strings.TrimSpace(nl.Role)
	nl.VehicleNumber = strings.TrimSpace(nl.VehicleNumber)
	nl.Note = strings.TrimSpace(nl.Note)
	return nl
}

func validateNewLog(nl types.NewEntryLog) error {
	if !nl.ActionType.Valid() {
		return invalid("action_type", "must be entry or exit")
	}
	if nl.PersonName == "" {
		return invalid("person_name", "is required")
	}
	if nl.IDNumber == "" {
		return invalid("id_number", "is required")
	}
	return nil
}

func trimLogPatch(p types.EntryLogPatch) types.EntryLogPatch {
	p.PersonName = trimmed(p.PersonName)
	p.IDNumber = trimmed(p.IDNumber)
	p.Role = trimmed(p.Role)
	p.VehicleNumber = trimmed(p.VehicleNumber)
	p.Note = trimmed(p.Note)
	return p
}

func validateLogPatch(p types.EntryLogPatch) error {
	if p.ActionType != nil && !p.ActionType.Valid() {
		return invalid("action_type", "must be entry or exit")
	}
	if p.PersonName != nil && *p.PersonName == "" {
		return invalid("person_name", "must not be empty")
	}
	if p.IDNumber != nil && *p.IDNumber == "" {
		return invalid("id_number", "must not be empty")
	}
	if p.Timestamp != nil && p.Timestamp.IsZero() {
		return invalid("timestamp", "must be set")
	}
	return nil
}
