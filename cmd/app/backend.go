package main

import (
	"context"
	"fmt"
	"time"

	"todo_api/internal/config"
	"todo_api/internal/db"
	"todo_api/internal/http/handlers"
	"todo_api/internal/logger"
	"todo_api/internal/repository"
	"todo_api/internal/service"
	"todo_api/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// backend is the store selected by STORAGE_BACKEND plus what the process
// needs to probe and release it.
type backend struct {
	store  service.Store
	checks map[string]handlers.Check
	redis  *redis.Client
	pool   *pgxpool.Pool
}

func (b *backend) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{checks: map[string]handlers.Check{}}

	if cfg.RedisAddr != "" {
		client, err := newRedis(ctx, cfg)
		if err != nil {
			if cfg.StorageBackend == config.BackendRedis {
				return nil, err
			}
			// rate limiting falls back to the in-process limiter
			logger.Warn("redis unavailable", "addr", cfg.RedisAddr, "error", err)
		} else {
			b.redis = client
			b.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}

	if cfg.StorageBackend == config.BackendPostgres {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.pool = pool
		if err := db.Migrate(ctx, pool); err != nil {
			b.Close()
			return nil, err
		}
		repo := repository.New(pool)
		b.store = repo
		b.checks["database"] = pool.Ping
		// reads the default user's tasks through the same path file backends use
		view := storage.Instrumented(cfg.StorageBackend, storage.NewDB(repo, cfg.DefaultUsername))
		b.checks["storage"] = func(ctx context.Context) error {
			_, err := view.Read(ctx)
			return err
		}
		return b, nil
	}

	var s storage.Storage
	switch cfg.StorageBackend {
	case config.BackendMemory:
		s = storage.NewMemory()
	case config.BackendJSON:
		s = storage.NewJSONFile(cfg.StoragePath)
	case config.BackendYAML:
		s = storage.NewYAMLFile(cfg.StoragePath)
	case config.BackendCSV:
		s = storage.NewCSVFile(cfg.StoragePath)
	case config.BackendRedis:
		s = storage.NewRedis(b.redis, cfg.RedisKey)
	default:
		b.Close()
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	s = storage.Instrumented(cfg.StorageBackend, s)
	if err := storage.Ensure(ctx, s); err != nil {
		b.Close()
		return nil, fmt.Errorf("prepare %s storage: %w", cfg.StorageBackend, err)
	}
	b.store = storage.NewCollection(s)
	b.checks["storage"] = func(ctx context.Context) error {
		_, err := s.Read(ctx)
		return err
	}
	return b, nil
}

func newRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
