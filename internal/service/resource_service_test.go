package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	dom "productivity/internal/domain"
	"productivity/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records every call and keeps rows in memory.
type fakeStore struct {
	mu    sync.Mutex
	calls int
	rows  map[string]dom.Record
	err   error
}

func newFakeStore() *fakeStore { return &fakeStore{rows: map[string]dom.Record{}} }

func (f *fakeStore) hit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeStore) List(_ context.Context, res dom.Resource, owner string, filters ...repo.Eq) ([]dom.Record, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	var out []dom.Record
outer:
	for _, r := range f.rows {
		if r[dom.ColOwner] != owner {
			continue
		}
		for _, eq := range filters {
			if r[eq.Column] != eq.Value {
				continue outer
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, _ dom.Resource, owner, id string) (dom.Record, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	r, ok := f.rows[id]
	if !ok || r[dom.ColOwner] != owner {
		return nil, repo.ErrNoRows
	}
	return r, nil
}

func (f *fakeStore) Insert(_ context.Context, _ dom.Resource, rec dom.Record) (dom.Record, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	f.rows[rec[dom.ColID].(string)] = rec
	return rec, nil
}

func (f *fakeStore) Update(_ context.Context, _ dom.Resource, owner, id string, patch dom.Record) (dom.Record, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	r, ok := f.rows[id]
	if !ok || r[dom.ColOwner] != owner {
		return nil, repo.ErrNoRows
	}
	next := dom.Record{}
	for k, v := range r {
		next[k] = v
	}
	for k, v := range patch {
		next[k] = v
	}
	f.rows[id] = next
	return next, nil
}

func (f *fakeStore) Delete(_ context.Context, _ dom.Resource, owner, id string) error {
	if err := f.hit(); err != nil {
		return err
	}
	r, ok := f.rows[id]
	if !ok || r[dom.ColOwner] != owner {
		return repo.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStore) Ping(context.Context) error { return nil }
func (f *fakeStore) Close()                     {}

type fakeCache struct {
	lists       map[string][]dom.Record
	invalidated []string
}

func (c *fakeCache) GetList(_ context.Context, key string) ([]dom.Record, error) {
	return c.lists[key], nil
}

func (c *fakeCache) SetList(_ context.Context, key string, list []dom.Record) error {
	c.lists[key] = list
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, prefix string) error {
	c.invalidated = append(c.invalidated, prefix)
	for k := range c.lists {
		if strings.HasPrefix(k, prefix) {
			delete(c.lists, k)
		}
	}
	return nil
}

func newTestService(res dom.Resource, store repo.Store, c ListCache) *ResourceService {
	s := NewResourceService(res, store, c)
	clock := fixedNow
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	n := 0
	s.newID = func() string {
		n++
		return res.Table + "-" + string(rune('0'+n))
	}
	return s
}

func TestCreateMissingRequiredNeverReachesStore(t *testing.T) {
	for _, res := range dom.All() {
		t.Run(res.Name, func(t *testing.T) {
			store := newFakeStore()
			s := newTestService(res, store, nil)
			_, err := s.Create(context.Background(), "u1", map[string]any{})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, CodeMissingField, verr.Code)
			assert.Zero(t, store.calls)
		})
	}
}

func TestCreateWithOnlyRequiredFields(t *testing.T) {
	for _, res := range dom.All() {
		t.Run(res.Name, func(t *testing.T) {
			body := map[string]any{}
			for _, name := range res.Required() {
				if res.KindOf(name) == dom.KindDate {
					body[name] = "2026-01-01"
				} else {
					body[name] = "value"
				}
			}
			s := newTestService(res, newFakeStore(), nil)
			rec, err := s.Create(context.Background(), "u1", body)
			require.NoError(t, err)
			assert.NotEmpty(t, rec[dom.ColID])
			assert.Equal(t, "u1", rec[dom.ColOwner])
			assert.Equal(t, rec[dom.ColCreatedAt], rec[dom.ColUpdatedAt])
		})
	}
}

func TestMissingIdentityNeverReachesStore(t *testing.T) {
	store := newFakeStore()
	s := newTestService(dom.Tasks, store, nil)
	ctx := context.Background()

	_, err := s.List(ctx, "", "")
	assert.ErrorIs(t, err, ErrMissingIdentity)
	_, err = s.Create(ctx, "", map[string]any{"titulo": "x"})
	assert.ErrorIs(t, err, ErrMissingIdentity)
	_, err = s.Update(ctx, "", "t1", map[string]any{})
	assert.ErrorIs(t, err, ErrMissingIdentity)
	assert.ErrorIs(t, s.Delete(ctx, "", "t1"), ErrMissingIdentity)
	_, err = s.Get(ctx, "", "t1")
	assert.ErrorIs(t, err, ErrMissingIdentity)
	assert.Zero(t, store.calls)
}

func TestUpdateCannotChangeWriteOnceFields(t *testing.T) {
	s := newTestService(dom.Tasks, newFakeStore(), nil)
	ctx := context.Background()
	created, err := s.Create(ctx, "u1", map[string]any{"titulo": "Buy milk"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, "u1", created["id"].(string), map[string]any{
		"id":         "other",
		"user_id":    "u2",
		"created_at": "2000-01-01T00:00:00Z",
		"status":     "concluida",
	})
	require.NoError(t, err)
	assert.Equal(t, created["id"], updated["id"])
	assert.Equal(t, "u1", updated["user_id"])
	assert.Equal(t, created["created_at"], updated["created_at"])
	assert.Equal(t, "concluida", updated["status"])
	assert.True(t, updated["updated_at"].(time.Time).After(created["updated_at"].(time.Time)))
}

func TestForeignOwnerLooksLikeMissingRecord(t *testing.T) {
	store := newFakeStore()
	s := newTestService(dom.Tasks, store, nil)
	ctx := context.Background()
	created, err := s.Create(ctx, "u1", map[string]any{"titulo": "Buy milk"})
	require.NoError(t, err)
	id := created["id"].(string)

	_, errForeign := s.Update(ctx, "u2", id, map[string]any{"titulo": "hijack"})
	_, errMissing := s.Update(ctx, "u1", "nope", map[string]any{"titulo": "hijack"})
	assert.ErrorIs(t, errForeign, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "u2", id), ErrNotFound)
	assert.Equal(t, "Buy milk", store.rows[id]["titulo"])

	_, err = s.Get(ctx, "u2", id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "u1", id))
	assert.ErrorIs(t, s.Delete(ctx, "u1", id), ErrNotFound)
}

func TestListIsOwnerScoped(t *testing.T) {
	s := newTestService(dom.Tasks, newFakeStore(), nil)
	ctx := context.Background()
	_, err := s.Create(ctx, "u1", map[string]any{"titulo": "Buy milk"})
	require.NoError(t, err)

	list, err := s.List(ctx, "u2", "")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	list, err = s.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListFilterOnlyForFilterableResources(t *testing.T) {
	store := newFakeStore()
	logs := newTestService(dom.HabitLogs, store, nil)
	ctx := context.Background()
	for _, h := range []string{"h1", "h2", "h1"} {
		_, err := logs.Create(ctx, "u1", map[string]any{"habito_id": h, "data": "2026-01-01"})
		require.NoError(t, err)
	}
	list, err := logs.List(ctx, "u1", "h1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	notes := newTestService(dom.Notes, newFakeStore(), nil)
	_, err = notes.Create(ctx, "u1", map[string]any{"titulo": "x"})
	require.NoError(t, err)
	list, err = notes.List(ctx, "u1", "ignored")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStoreFailureIsWrapped(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	s := newTestService(dom.Books, store, nil)

	_, err := s.List(context.Background(), "u1", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "list books")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestListUsesCacheAndWritesInvalidate(t *testing.T) {
	store := newFakeStore()
	c := &fakeCache{lists: map[string][]dom.Record{}}
	s := newTestService(dom.Notes, store, c)
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", map[string]any{"titulo": "a"})
	require.NoError(t, err)
	calls := store.calls

	_, err = s.List(ctx, "u1", "")
	require.NoError(t, err)
	_, err = s.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, calls+1, store.calls, "second list served from cache")

	_, err = s.Create(ctx, "u1", map[string]any{"titulo": "b"})
	require.NoError(t, err)
	list, err := s.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Contains(t, c.invalidated, "list:notes:2:u1:")

	other, err := s.List(ctx, "u2", "")
	require.NoError(t, err)
	assert.Empty(t, other)
}

// pausingStore snapshots a list, then waits for release before returning it.
type pausingStore struct {
	*fakeStore
	loaded  chan struct{}
	release chan struct{}
}

func (p *pausingStore) List(ctx context.Context, res dom.Resource, owner string, filters ...repo.Eq) ([]dom.Record, error) {
	list, err := p.fakeStore.List(ctx, res, owner, filters...)
	close(p.loaded)
	<-p.release
	return list, err
}

func TestListOverlappingWriteDoesNotFillCache(t *testing.T) {
	store := &pausingStore{fakeStore: newFakeStore(), loaded: make(chan struct{}), release: make(chan struct{})}
	c := &fakeCache{lists: map[string][]dom.Record{}}
	s := newTestService(dom.Notes, store, c)
	ctx := context.Background()

	done := make(chan []dom.Record)
	go func() {
		list, err := s.List(ctx, "u1", "")
		assert.NoError(t, err)
		done <- list
	}()
	<-store.loaded

	_, err := s.Create(ctx, "u1", map[string]any{"titulo": "a"})
	require.NoError(t, err)
	close(store.release)

	assert.Empty(t, <-done, "load started before the write")
	_, cached := c.lists["list:notes:2:u1:"]
	assert.False(t, cached)
}
