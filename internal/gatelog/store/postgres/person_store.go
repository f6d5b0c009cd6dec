package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func (s *Store) ListPersons(ctx context.Context) ([]types.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, id_number, role, vehicle_number, created_at
FROM persons
ORDER BY created_at, id;`)
	if err != nil {
		return nil, fmt.Errorf("select persons: %w", err)
	}
	defer rows.Close()

	persons := []types.Person{}
	for rows.Next() {
		var (
			p       types.Person
			role    sql.NullString
			vehicle sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.IDNumber, &role, &vehicle, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Role = role.String
		p.VehicleNumber = vehicle.String
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}

func (s *Store) InsertPerson(ctx context.Context, p types.Person) error {
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO persons (id, name, id_number, role, vehicle_number, created_at)
VALUES ($1, $2, $3, $4, $5, $6);`,
		p.ID, p.Name, p.IDNumber, nullable(p.Role), nullable(p.VehicleNumber), p.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (s *Store) UpdatePerson(ctx context.Context, id string, patch types.PersonPatch) error {
	var set setList
	if patch.Name != nil {
		set.add("name", *patch.Name)
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
	if set.empty() {
		return s.exists(ctx, "persons", id)
	}

	q, args := set.update("persons", id)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return expectOne(res)
}

func (s *Store) DeletePerson(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return expectOne(res)
}

// exists reports store.ErrNotFound when table has no row with id.
func (s *Store) exists(ctx context.Context, table, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1;`, table), id).Scan(&one)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup %s: %w", table, err)
	}
	return nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
