package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dom "productivity/internal/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite stores dates and timestamps as fixed-layout text, booleans as
// integers and JSON as text.
var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: question,
	Encode: func(kind dom.Kind, v any) any {
		if v == nil {
			return nil
		}
		switch kind {
		case dom.KindJSON:
			if b, ok := marshalJSON(v).([]byte); ok {
				return string(b)
			}
		case dom.KindDate:
			if t, ok := v.(time.Time); ok {
				return t.Format(dateLayout)
			}
		case dom.KindTime:
			if t, ok := v.(time.Time); ok {
				return t.UTC().Format(timeLayout)
			}
		case dom.KindBool:
			if b, ok := v.(bool); ok {
				if b {
					return int64(1)
				}
				return int64(0)
			}
		}
		return v
	},
}

// SQLiteStore implements Store on database/sql with the modernc driver.
// Used for local development and tests.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens the database at path (":memory:" for a private
// in-memory database).
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; also keeps a :memory: database alive on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// DB exposes the handle for migrations.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) List(ctx context.Context, res dom.Resource, owner string, filters ...Eq) ([]dom.Record, error) {
	st := SQLite.SelectList(res, owner, filters...)
	rows, err := s.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Record{}
	for rows.Next() {
		rec, err := scanSQLite(res, rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, res dom.Resource, owner, id string) (dom.Record, error) {
	return s.one(ctx, res, SQLite.SelectOne(res, owner, id))
}

func (s *SQLiteStore) Insert(ctx context.Context, res dom.Resource, rec dom.Record) (dom.Record, error) {
	return s.one(ctx, res, SQLite.Insert(res, rec))
}

func (s *SQLiteStore) Update(ctx context.Context, res dom.Resource, owner, id string, patch dom.Record) (dom.Record, error) {
	return s.one(ctx, res, SQLite.Update(res, owner, id, patch))
}

func (s *SQLiteStore) Delete(ctx context.Context, res dom.Resource, owner, id string) error {
	st := SQLite.Delete(res, owner, id)
	var deleted string
	err := s.db.QueryRowContext(ctx, st.SQL, st.Args...).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

func (s *SQLiteStore) one(ctx context.Context, res dom.Resource, st Statement) (dom.Record, error) {
	rows, err := s.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoRows
	}
	rec, err := scanSQLite(res, rows)
	if err != nil {
		return nil, err
	}
	return rec, rows.Close()
}

func scanSQLite(res dom.Resource, rows *sql.Rows) (dom.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	rec := make(dom.Record, len(cols))
	for i, col := range cols {
		v, err := decodeSQLite(res.KindOf(col), vals[i])
		if err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", res.Table, col, err)
		}
		rec[col] = v
	}
	return rec, nil
}

func decodeSQLite(kind dom.Kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch kind {
	case dom.KindBool:
		switch b := v.(type) {
		case int64:
			return b != 0, nil
		case bool:
			return b, nil
		}
	case dom.KindJSON:
		if s, ok := v.(string); ok {
			var out any
			if err := json.Unmarshal([]byte(s), &out); err != nil {
				return nil, err
			}
			return out, nil
		}
	case dom.KindDate:
		return decodeDate(v), nil
	case dom.KindTime:
		return decodeTime(v), nil
	case dom.KindInt:
		return decodeInt(v), nil
	case dom.KindFloat:
		return decodeFloat(v), nil
	}
	return v, nil
}
