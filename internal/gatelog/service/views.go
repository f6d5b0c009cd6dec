package service

import (
	"context"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/export"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/query"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

// Derived views are recomputed from a snapshot on every call.

func (s *GateService) FilteredLogs(f types.FilterOptions) []types.EntryLog {
	return query.FilterLogs(s.Logs(), f)
}

// RecentPersons suggests up to five persons seen inside the configured
// window, ranked by the configured mode.
func (s *GateService) RecentPersons() []types.Person {
	st := s.Settings()
	return query.RecentPersons(s.Persons(), s.Logs(), st.SuggestHours, st.RecencyMode, s.now())
}

func (s *GateService) SearchPersons(q string, limit int) []types.Person {
	return query.SearchPersons(s.Persons(), q, limit)
}

func (s *GateService) Stats() types.Stats {
	return query.ComputeStats(s.Logs(), s.now(), s.loc)
}

// ExportCSV renders the filtered log and the file name to offer it under.
func (s *GateService) ExportCSV(f types.FilterOptions) (name string, data []byte) {
	return export.FileName(s.now()), export.FormatCSV(s.FilteredLogs(f), s.loc)
}

// ArchiveExport renders the filtered log and stores it with the archiver.
func (s *GateService) ArchiveExport(ctx context.Context, f types.FilterOptions) (export.Archive, error) {
	if s.archiver == nil {
		return export.Archive{}, export.ErrArchiveDisabled
	}

	_, data := s.ExportCSV(f)
	a, err := s.archiver.Store(ctx, s.now(), data)
	if err != nil {
		return export.Archive{}, err
	}
	s.log.Info(ctx, "export archived", "key", a.Key, "bytes", len(data))
	return a, nil
}
