package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"productivity/internal/cache"
	"productivity/internal/config"
	"productivity/internal/repo"
	"productivity/internal/service"
	"productivity/migrations"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	log    *slog.Logger
	store  repo.Store
	redis  *redis.Client
	router *gin.Engine
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.store = store

	var lc service.ListCache
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			store.Close()
			return nil, err
		}
		a.redis = rdb
		lc = cache.NewListCache(rdb, cfg.Redis.DefaultTTL.Duration())
		log.Info("redis list cache enabled", "addr", cfg.Redis.Addr)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a.router = NewRouter(Deps{
		Config:   cfg,
		Store:    store,
		Cache:    lc,
		Logger:   log,
		Registry: reg,
	})
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases the store and Redis connections. It returns ctx.Err() if
// ctx ends first; pgxpool.Close blocks until acquired connections return.
func (a *App) Close(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		var err error
		if a.redis != nil {
			err = a.redis.Close()
		}
		if a.store != nil {
			a.store.Close()
		}
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("close: %w", ctx.Err())
	}
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		s, err := repo.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.Store.MigrateOnStart {
			if err := migrateUp(ctx, log, "sqlite", s.DB()); err != nil {
				s.Close()
				return nil, err
			}
		}
		return s, nil
	case "postgres":
		if cfg.Store.MigrateOnStart {
			if err := runPGMigrations(ctx, log, cfg.PG.DSN); err != nil {
				return nil, err
			}
		}
		return repo.OpenPG(ctx, cfg.PG.DSN)
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// OpenMigrations returns a goose provider for the configured store and a
// func releasing its connection.
func OpenMigrations(cfg config.Config) (*goose.Provider, func() error, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		db, err = goose.OpenDBWithDriver("pgx", cfg.PG.DSN)
	case "sqlite":
		db, err = sql.Open("sqlite", cfg.Store.SQLitePath)
	default:
		err = fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("goose open db: %w", err)
	}
	p, err := migrations.NewProvider(cfg.Store.Driver, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return p, db.Close, nil
}

func runPGMigrations(ctx context.Context, log *slog.Logger, dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()
	return migrateUp(ctx, log, "postgres", db)
}

func migrateUp(ctx context.Context, log *slog.Logger, driver string, db *sql.DB) error {
	p, err := migrations.NewProvider(driver, db)
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "driver", driver, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
