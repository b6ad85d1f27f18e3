package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	dom "productivity/internal/domain"
)

// ErrNoRows is returned when no row matches the (id, owner) pair.
var ErrNoRows = errors.New("no rows")

// Store is the datastore capability the service needs. Every operation
// is scoped to an owner.
type Store interface {
	List(ctx context.Context, res dom.Resource, owner string, filters ...Eq) ([]dom.Record, error)
	Get(ctx context.Context, res dom.Resource, owner, id string) (dom.Record, error)
	Insert(ctx context.Context, res dom.Resource, rec dom.Record) (dom.Record, error)
	Update(ctx context.Context, res dom.Resource, owner, id string, patch dom.Record) (dom.Record, error)
	Delete(ctx context.Context, res dom.Resource, owner, id string) error
	Ping(ctx context.Context) error
	Close()
}

const (
	dateLayout = "2006-01-02"
	// Fixed width so text timestamps sort chronologically.
	timeLayout = "2006-01-02T15:04:05.000000Z07:00"
)

func marshalJSON(v any) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	return b
}

// decodeDate renders a date column as YYYY-MM-DD regardless of how the
// driver returned it.
func decodeDate(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dateLayout)
	case string:
		if len(t) > len(dateLayout) {
			return t[:len(dateLayout)]
		}
		return t
	case []byte:
		return decodeDate(string(t))
	}
	return v
}

func decodeTime(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC()
			}
		}
		return t
	case []byte:
		return decodeTime(string(t))
	}
	return v
}

func decodeInt(v any) any {
	switch n := v.(type) {
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return v
}

func decodeFloat(v any) any {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	}
	return v
}
