package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// Persons returns a copy of the directory in insertion order.
func (s *GateService) Persons() []types.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Person, len(s.persons))
	copy(out, s.persons)
	return out
}

func (s *GateService) Person(id string) (types.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.personIndex(id); i >= 0 {
		return s.persons[i], nil
	}
	return types.Person{}, ErrPersonNotFound
}

func (s *GateService) CreatePerson(ctx context.Context, np types.NewPerson) (types.Person, error) {
	np = trimNewPerson(np)
	if err := validateNewPerson(np); err != nil {
		return types.Person{}, err
	}

	var p types.Person
	err := s.mutate(func() ([]types.Change, error) {
		var err error
		p, err = s.insertPerson(ctx, np)
		if err != nil {
			return nil, err
		}
		return []types.Change{s.change(types.EntityPerson, types.OpCreated, p.ID)}, nil
	})
	return p, err
}

// insertPerson must be called with writeMu held.
func (s *GateService) insertPerson(ctx context.Context, np types.NewPerson) (types.Person, error) {
	p := types.Person{
		ID:            s.newID(),
		Name:          np.Name,
		IDNumber:      np.IDNumber,
		Role:          np.Role,
		VehicleNumber: np.VehicleNumber,
		CreatedAt:     s.now(),
	}
	if err := s.backend.InsertPerson(ctx, p); err != nil {
		return types.Person{}, fmt.Errorf("insert person: %w", err)
	}

	s.mu.Lock()
	s.persons = append(s.persons, p)
	s.mu.Unlock()

	s.log.Info(ctx, "person created", "person_id", p.ID)
	return p, nil
}

// UpdatePerson merges patch into the person. Existing logs keep their
// snapshot of the old values.
func (s *GateService) UpdatePerson(ctx context.Context, id string, patch types.PersonPatch) (types.Person, error) {
	patch = trimPersonPatch(patch)
	if err := validatePersonPatch(patch); err != nil {
		return types.Person{}, err
	}

	var updated types.Person
	err := s.mutate(func() ([]types.Change, error) {
		s.mu.RLock()
		i := s.personIndex(id)
		if i >= 0 {
			updated = s.persons[i]
		}
		s.mu.RUnlock()
		if i < 0 {
			return nil, ErrPersonNotFound
		}
		if patch.IsEmpty() {
			return nil, nil
		}

		if err := s.backend.UpdatePerson(ctx, id, patch); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrPersonNotFound
			}
			return nil, fmt.Errorf("update person %s: %w", id, err)
		}

		patch.Apply(&updated)
		s.mu.Lock()
		if i := s.personIndex(id); i >= 0 {
			s.persons[i] = updated
		}
		s.mu.Unlock()

		return []types.Change{s.change(types.EntityPerson, types.OpUpdated, id)}, nil
	})
	if err != nil {
		return types.Person{}, err
	}
	return updated, nil
}

// DeletePerson removes the person from the directory. Logs that reference
// the person are left as they are.
func (s *GateService) DeletePerson(ctx context.Context, id string) error {
	return s.mutate(func() ([]types.Change, error) {
		s.mu.RLock()
		found := s.personIndex(id) >= 0
		s.mu.RUnlock()
		if !found {
			return nil, ErrPersonNotFound
		}

		if err := s.backend.DeletePerson(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrPersonNotFound
			}
			return nil, fmt.Errorf("delete person %s: %w", id, err)
		}

		s.mu.Lock()
		if i := s.personIndex(id); i >= 0 {
			s.persons = append(s.persons[:i], s.persons[i+1:]...)
		}
		s.mu.Unlock()

		s.log.Info(ctx, "person deleted", "person_id", id)
		return []types.Change{s.change(types.EntityPerson, types.OpDeleted, id)}, nil
	})
}

// personIndex must be called with mu held.
func (s *GateService) personIndex(id string) int {
	for i := range s.persons {
		if s.persons[i].ID == id {
			return i
		}
	}
	return -1
}

// personByIDNumber must be called with mu held.
func (s *GateService) personByIDNumber(idNumber string) (types.Person, bool) {
	for _, p := range s.persons {
		if p.IDNumber == idNumber {
			return p, true
		}
	}
	return types.Person{}, false
}

func trimNewPerson(np types.NewPerson) types.NewPerson {
	np.Name = strings.TrimSpace(np.Name)
	np.IDNumber = strings.TrimSpace(np.IDNumber)
	np.Role = strings.TrimSpace(np.Role)
	np.VehicleNumber = strings.TrimSpace(np.VehicleNumber)
	return np
}

func validateNewPerson(np types.NewPerson) error {
	if np.Name == "" {
		return invalid("name", "is required")
	}
	if np.IDNumber == "" {
		return invalid("id_number", "is required")
	}
	return nil
}

// trimPersonPatch returns a copy with every set field trimmed. The caller's
// strings are not modified.
func trimPersonPatch(p types.PersonPatch) types.PersonPatch {
	p.Name = trimmed(p.Name)
	p.IDNumber = trimmed(p.IDNumber)
	p.Role = trimmed(p.Role)
	p.VehicleNumber = trimmed(p.VehicleNumber)
	return p
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func validatePersonPatch(p types.PersonPatch) error {
	if p.Name != nil && *p.Name == "" {
		return invalid("name", "must not be empty")
	}
	if p.IDNumber != nil && *p.IDNumber == "" {
		return invalid("id_number", "must not be empty")
	}
	return nil
}
