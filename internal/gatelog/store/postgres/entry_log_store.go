package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func (s *Store) ListLogs(ctx context.Context) ([]types.EntryLog, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, person_id, person_name, id_number, role, vehicle_number, action_type, timestamp, note
FROM entry_logs
ORDER BY timestamp DESC, id;`)
	if err != nil {
		return nil, fmt.Errorf("select entry_logs: %w", err)
	}
	defer rows.Close()

	logs := []types.EntryLog{}
	for rows.Next() {
		var (
			l                             types.EntryLog
			personID, role, vehicle, note sql.NullString
			action                        string
		)
		if err := rows.Scan(&l.ID, &personID, &l.PersonName, &l.IDNumber, &role, &vehicle, &action, &l.Timestamp, &note); err != nil {
			return nil, fmt.Errorf("scan entry_log: %w", err)
		}
		l.PersonID = personID.String
		l.Role = role.String
		l.VehicleNumber = vehicle.String
		l.ActionType = types.ActionType(action)
		l.Note = note.String
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry_logs: %w", err)
	}
	return logs, nil
}

func (s *Store) InsertLog(ctx context.Context, l types.EntryLog) error {
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO entry_logs (id, person_id, person_name, id_number, role, vehicle_number, action_type, timestamp, note)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		l.ID, nullable(l.PersonID), l.PersonName, l.IDNumber, nullable(l.Role),
		nullable(l.VehicleNumber), string(l.ActionType), l.Timestamp, nullable(l.Note),
	); err != nil {
		return fmt.Errorf("insert entry_log: %w", err)
	}
	return nil
}

func (s *Store) UpdateLog(ctx context.Context, id string, patch types.EntryLogPatch) error {
	var set setList
	if patch.PersonName != nil {
		set.add("person_name", *patch.PersonName)
	}
	if patch.IDNumber != nil {
		set.add("id_number", *patch.IDNumber)
	}
	if patch.Role != nil {
		set.add("role", nullable(*patch.Role))
	}
	if patch.VehicleNumber != nil {
		set.add("vehicle_number", nullable(*patch.VehicleNumber))
	}
	if patch.ActionType != nil {
		set.add("action_type", string(*patch.ActionType))
	}
	if patch.Timestamp != nil {
		set.add("timestamp", *patch.Timestamp)
	}
	if patch.Note != nil {
		set.add("note", nullable(*patch.Note))
	}
	if set.empty() {
		return s.exists(ctx, "entry_logs", id)
	}

	q, args := set.update("entry_logs", id)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update entry_log: %w", err)
	}
	return expectOne(res)
}

func (s *Store) DeleteLog(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entry_logs WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete entry_log: %w", err)
	}
	return expectOne(res)
}

func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entry_logs WHERE timestamp < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune entry_logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
