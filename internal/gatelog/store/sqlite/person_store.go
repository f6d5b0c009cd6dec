package sqlite

import (
	"context"
	"database/sql"

	dbpkg "github.com/BrandonDHaskell/gatelog/server/internal/db"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// Store is the local backing store. Persons and logs are kept as whole JSON
// arrays; every mutation rewrites the array inside one Worker transaction.
type Store struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func New(db *sql.DB, writer *dbpkg.Worker) *Store {
	return &Store{db: db, writer: writer}
}

func (s *Store) ListPersons(ctx context.Context) ([]types.Person, error) {
	persons := []types.Person{}
	if err := getArray(ctx, s.db, KeyPersons, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *Store) InsertPerson(ctx context.Context, p types.Person) error {
	return s.mutatePersons(ctx, func(persons []types.Person) ([]types.Person, error) {
		return append(persons, p), nil
	})
}

func (s *Store) UpdatePerson(ctx context.Context, id string, patch types.PersonPatch) error {
	return s.mutatePersons(ctx, func(persons []types.Person) ([]types.Person, error) {
		for i := range persons {
			if persons[i].ID == id {
				patch.Apply(&persons[i])
				return persons, nil
			}
		}
		return nil, store.ErrNotFound
	})
}

func (s *Store) DeletePerson(ctx context.Context, id string) error {
	return s.mutatePersons(ctx, func(persons []types.Person) ([]types.Person, error) {
		for i := range persons {
			if persons[i].ID == id {
				return append(persons[:i], persons[i+1:]...), nil
			}
		}
		return nil, store.ErrNotFound
	})
}

func (s *Store) mutatePersons(ctx context.Context, fn func([]types.Person) ([]types.Person, error)) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		persons := []types.Person{}
		if err := getArray(ctx, tx, KeyPersons, &persons); err != nil {
			return err
		}
		next, err := fn(persons)
		if err != nil {
			return err
		}
		return putArray(ctx, tx, KeyPersons, next)
	})
}
