package service

import (
	"context"
	"strings"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// RecordEntry logs a pass through the gate.
//
// With PersonID set the log snapshots that person. Otherwise Name and
// IDNumber describe the visitor: a person with the same IDNumber is reused,
// or exactly one new person is created, and the log snapshots the submitted
// fields. If the person is created but the log write then fails, the person
// stays.
func (s *GateService) RecordEntry(ctx context.Context, req types.EntryRequest) (types.EntryResponse, error) {
	req = trimEntryRequest(req)
	if !req.ActionType.Valid() {
		return types.EntryResponse{}, invalid("action_type", "must be entry or exit")
	}
	if req.PersonID == "" {
		if req.Name == "" {
			return types.EntryResponse{}, invalid("name", "is required")
		}
		if req.IDNumber == "" {
			return types.EntryResponse{}, invalid("id_number", "is required")
		}
	}

	var resp types.EntryResponse
	err := s.mutate(func() ([]types.Change, error) {
		var changes []types.Change

		nl, created, err := s.resolveVisitor(ctx, req)
		if created != nil {
			resp.PersonCreated = true
			changes = append(changes, s.change(types.EntityPerson, types.OpCreated, created.ID))
		}
		if err != nil {
			return changes, err
		}

		l, err := s.insertLog(ctx, nl)
		if err != nil {
			return changes, err
		}
		resp.Log = l
		return append(changes, s.change(types.EntityLog, types.OpCreated, l.ID)), nil
	})
	return resp, err
}

// resolveVisitor builds the log snapshot for req, creating a person when
// needed. Must be called with writeMu held.
func (s *GateService) resolveVisitor(ctx context.Context, req types.EntryRequest) (types.NewEntryLog, *types.Person, error) {
	nl := types.NewEntryLog{ActionType: req.ActionType, Note: req.Note}

	if req.PersonID != "" {
		p, err := s.Person(req.PersonID)
		if err != nil {
			return nl, nil, err
		}
		nl.PersonID = p.ID
		nl.PersonName = p.Name
		nl.IDNumber = p.IDNumber
		nl.Role = p.Role
		nl.VehicleNumber = p.VehicleNumber
		return nl, nil, nil
	}

	nl.PersonName = req.Name
	nl.IDNumber = req.IDNumber
	nl.Role = req.Role
	nl.VehicleNumber = req.VehicleNumber

	s.mu.RLock()
	existing, ok := s.personByIDNumber(req.IDNumber)
	s.mu.RUnlock()
	if ok {
		nl.PersonID = existing.ID
		return nl, nil, nil
	}

	p, err := s.insertPerson(ctx, types.NewPerson{
		Name:          req.Name,
		IDNumber:      req.IDNumber,
		Role:          req.Role,
		VehicleNumber: req.VehicleNumber,
	})
	if err != nil {
		return nl, nil, err
	}
	nl.PersonID = p.ID
	return nl, &p, nil
}

func trimEntryRequest(r types.EntryRequest) types.EntryRequest {
	r.PersonID = strings.TrimSpace(r.PersonID)
	r.Name = strings.TrimSpace(r.Name)
	r.IDNumber = strings.TrimSpace(r.IDNumber)
	r.Role = strings.TrimSpace(r.Role)
	r.VehicleNumber = strings.TrimSpace(r.VehicleNumber)
	r.Note = strings.TrimSpace(r.Note)
	return r
}
