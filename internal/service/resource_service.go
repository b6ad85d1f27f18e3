package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	dom "productivity/internal/domain"
	"productivity/internal/repo"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ListCache caches owner-scoped list results. Get returns nil on a miss.
type ListCache interface {
	GetList(ctx context.Context, key string) ([]dom.Record, error)
	SetList(ctx context.Context, key string, list []dom.Record) error
	Invalidate(ctx context.Context, prefix string) error
}

// ResourceService runs the CRUD operations of one resource, always scoped
// to the calling owner.
type ResourceService struct {
	res   dom.Resource
	store repo.Store
	cache ListCache
	sf    singleflight.Group
	// writes counts cache invalidations. A list load that overlaps one
	// does not fill the cache.
	writes atomic.Uint64

	now   func() time.Time
	newID func() string
}

// NewResourceService creates a ResourceService. If c is nil, caching is disabled.
func NewResourceService(res dom.Resource, store repo.Store, c ListCache) *ResourceService {
	return &ResourceService{
		res:   res,
		store: store,
		cache: c,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID: func() string { return uuid.NewString() },
	}
}

// Resource returns the descriptor the service operates on.
func (s *ResourceService) Resource() dom.Resource { return s.res }

// List returns the owner's records in resource order. filter is applied
// to the resource filter column when non-empty.
func (s *ResourceService) List(ctx context.Context, owner, filter string) ([]dom.Record, error) {
	if owner == "" {
		return nil, ErrMissingIdentity
	}
	var filters []repo.Eq
	if s.res.FilterKey != "" && filter != "" {
		filters = append(filters, repo.Eq{Column: s.res.FilterKey, Value: filter})
	}
	load := func() ([]dom.Record, error) {
		list, err := s.store.List(ctx, s.res, owner, filters...)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", s.res.Table, err)
		}
		if list == nil {
			list = []dom.Record{}
		}
		return list, nil
	}
	if s.cache == nil {
		return load()
	}

	key := s.ownerPrefix(owner) + filter
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, key); err == nil && list != nil {
			return list, nil
		}
		seen := s.writes.Load()
		list, err := load()
		if err != nil {
			return nil, err
		}
		if s.writes.Load() == seen {
			_ = s.cache.SetList(ctx, key, list)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Record), nil
}

// Get returns one record of the owner.
func (s *ResourceService) Get(ctx context.Context, owner, id string) (dom.Record, error) {
	if owner == "" {
		return nil, ErrMissingIdentity
	}
	rec, err := s.store.Get(ctx, s.res, owner, id)
	if err != nil {
		return nil, s.storeErr("get", err)
	}
	return rec, nil
}

// Create validates body and inserts a new record owned by owner.
func (s *ResourceService) Create(ctx context.Context, owner string, body map[string]any) (dom.Record, error) {
	if owner == "" {
		return nil, ErrMissingIdentity
	}
	rec, err := NormalizeCreate(s.res, owner, s.newID(), body, s.now())
	if err != nil {
		return nil, err
	}
	out, err := s.store.Insert(ctx, s.res, rec)
	if err != nil {
		return nil, s.storeErr("create", err)
	}
	s.invalidateCache(ctx, owner)
	return out, nil
}

// Update applies a partial change to the record matching (id, owner).
func (s *ResourceService) Update(ctx context.Context, owner, id string, body map[string]any) (dom.Record, error) {
	if owner == "" {
		return nil, ErrMissingIdentity
	}
	patch, err := NormalizeUpdate(s.res, body, s.now())
	if err != nil {
		return nil, err
	}
	out, err := s.store.Update(ctx, s.res, owner, id, patch)
	if err != nil {
		return nil, s.storeErr("update", err)
	}
	s.invalidateCache(ctx, owner)
	return out, nil
}

// Delete removes the record matching (id, owner).
func (s *ResourceService) Delete(ctx context.Context, owner, id string) error {
	if owner == "" {
		return ErrMissingIdentity
	}
	if err := s.store.Delete(ctx, s.res, owner, id); err != nil {
		return s.storeErr("delete", err)
	}
	s.invalidateCache(ctx, owner)
	return nil
}

func (s *ResourceService) storeErr(op string, err error) error {
	if errors.Is(err, repo.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", op, s.res.Table, err)
}

// ownerPrefix is the cache key prefix shared by all list variants of one
// owner, so a single write drops them together. The length prefix keeps
// owners containing ':' from colliding with another owner's filter keys.
func (s *ResourceService) ownerPrefix(owner string) string {
	return "list:" + s.res.Table + ":" + strconv.Itoa(len(owner)) + ":" + owner + ":"
}

func (s *ResourceService) invalidateCache(ctx context.Context, owner string) {
	if s.cache != nil {
		s.writes.Add(1)
		_ = s.cache.Invalidate(ctx, s.ownerPrefix(owner))
	}
}
