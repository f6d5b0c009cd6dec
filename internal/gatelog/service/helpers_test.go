package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/export"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/service"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store/memory"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

var t0 = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

// clock is a manual time source; each read returns the current value.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

// flakyBackend fails writes while fail is set.
type flakyBackend struct {
	*memory.Store
	fail error
}

func (f *flakyBackend) InsertPerson(ctx context.Context, p types.Person) error {
	if f.fail != nil {
		return f.fail
	}
	return f.Store.InsertPerson(ctx, p)
}

func (f *flakyBackend) UpdatePerson(ctx context.Context, id string, patch types.PersonPatch) error {
	if f.fail != nil {
		return f.fail
	}
	return f.Store.UpdatePerson(ctx, id, patch)
}

func (f *flakyBackend) DeletePerson(ctx context.Context, id string) error {
	if f.fail != nil {
		return f.fail
	}
	return f.Store.DeletePerson(ctx, id)
}

func (f *flakyBackend) InsertLog(ctx context.Context, l types.EntryLog) error {
	if f.fail != nil {
		return f.fail
	}
	return f.Store.InsertLog(ctx, l)
}

func (f *flakyBackend) SaveSettings(ctx context.Context, s types.Settings) error {
	if f.fail != nil {
		return f.fail
	}
	return f.Store.SaveSettings(ctx, s)
}

type fakeArchiver struct {
	payload []byte
	err     error
}

func (a *fakeArchiver) Store(_ context.Context, now time.Time, payload []byte) (export.Archive, error) {
	if a.err != nil {
		return export.Archive{}, a.err
	}
	a.payload = payload
	return export.Archive{Key: "exports/" + export.FileName(now), URL: "https://example.test/x"}, nil
}

type fixture struct {
	svc     *service.GateService
	backend *flakyBackend
	clock   *clock
	changes *[]types.Change
}

func newFixture(t *testing.T, opts service.Options) fixture {
	t.Helper()

	b := &flakyBackend{Store: memory.New()}
	c := &clock{t: t0}
	n := 0

	opts.Now = c.now
	opts.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	svc := service.NewGateService(b, opts)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var changes []types.Change
	svc.Subscribe(func(ch types.Change) { changes = append(changes, ch) })

	return fixture{svc: svc, backend: b, clock: c, changes: &changes}
}

func ptr[T any](v T) *T { return &v }
