package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	dom "productivity/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ListCache caches owner-scoped list results in Redis.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListCache returns a new ListCache.
func NewListCache(rdb *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list for key, or nil on a miss.
func (c *ListCache) GetList(ctx context.Context, key string) ([]dom.Record, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Record
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []dom.Record{}
	}
	return list, nil
}

// SetList stores the list in cache. A nil list is stored as empty.
func (c *ListCache) SetList(ctx context.Context, key string, list []dom.Record) error {
	if list == nil {
		list = []dom.Record{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Invalidate removes every key starting with prefix.
func (c *ListCache) Invalidate(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, escapePattern(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// escapePattern quotes the glob metacharacters of a SCAN MATCH pattern.
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
