package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dom "productivity/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres renders statements with $n placeholders and JSON columns sent as
// raw JSON text.
var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: dollar,
	Encode: func(kind dom.Kind, v any) any {
		if kind == dom.KindJSON {
			return marshalJSON(v)
		}
		return v
	},
}

// PGStore implements Store with a pgx connection pool.
type PGStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

// NewPGStore returns a new PGStore.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// OpenPG connects a pool to dsn and verifies it with a ping.
func OpenPG(ctx context.Context, dsn string) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return NewPGStore(pool), nil
}

func (s *PGStore) List(ctx context.Context, res dom.Resource, owner string, filters ...Eq) ([]dom.Record, error) {
	st := Postgres.SelectList(res, owner, filters...)
	rows, err := s.db.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	list := make([]dom.Record, len(maps))
	for i, m := range maps {
		list[i] = decodePG(res, m)
	}
	return list, nil
}

func (s *PGStore) Get(ctx context.Context, res dom.Resource, owner, id string) (dom.Record, error) {
	return s.one(ctx, res, Postgres.SelectOne(res, owner, id))
}

func (s *PGStore) Insert(ctx context.Context, res dom.Resource, rec dom.Record) (dom.Record, error) {
	return s.one(ctx, res, Postgres.Insert(res, rec))
}

func (s *PGStore) Update(ctx context.Context, res dom.Resource, owner, id string, patch dom.Record) (dom.Record, error) {
	return s.one(ctx, res, Postgres.Update(res, owner, id, patch))
}

func (s *PGStore) Delete(ctx context.Context, res dom.Resource, owner, id string) error {
	st := Postgres.Delete(res, owner, id)
	var deleted string
	err := s.db.QueryRow(ctx, st.SQL, st.Args...).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PGStore) Close() {
	s.db.Close()
}

func (s *PGStore) one(ctx context.Context, res dom.Resource, st Statement) (dom.Record, error) {
	rows, err := s.db.Query(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, err
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return decodePG(res, m), nil
}

// decodePG maps pgx native values to the JSON shapes the API returns.
// jsonb arrives already decoded.
func decodePG(res dom.Resource, m map[string]any) dom.Record {
	rec := make(dom.Record, len(m))
	for col, v := range m {
		if v == nil {
			rec[col] = nil
			continue
		}
		switch res.KindOf(col) {
		case dom.KindDate:
			v = decodeDate(v)
		case dom.KindTime:
			v = decodeTime(v)
		case dom.KindInt:
			v = decodeInt(v)
		case dom.KindFloat:
			v = decodeFloat(v)
		}
		rec[col] = v
	}
	return rec
}
