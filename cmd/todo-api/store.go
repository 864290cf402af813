package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"todo-api/internal/config"
	"todo-api/internal/observability/jsonlog"
	"todo-api/internal/retry"
	"todo-api/internal/store/memorystore"
	"todo-api/internal/store/mongostore"
	"todo-api/internal/store/postgres"
	"todo-api/internal/todo"
)

const closeTimeout = 5 * time.Second

// openStore builds the configured repository and waits until it answers a
// ping. The returned func releases its connections.
func openStore(ctx context.Context, cfg *config.Config, logger *jsonlog.Logger) (todo.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		m := cfg.Store.Mongo
		s, err := mongostore.Connect(ctx, m.URI, m.Database, m.Collection)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			cctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			if err := s.Close(cctx); err != nil {
				logger.Warn("mongo disconnect", map[string]any{"error": err.Error()})
			}
		}
		if err := waitReady(ctx, s, cfg.Store.ConnectAttempts, logger); err != nil {
			closeFn()
			return nil, nil, err
		}
		return s, closeFn, nil

	case config.DriverPostgres:
		db, err := sql.Open("pgx", cfg.Store.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		closeFn := func() { _ = db.Close() }

		repo := postgres.NewTodoRepo(db)
		if err := waitReady(ctx, repo, cfg.Store.ConnectAttempts, logger); err != nil {
			closeFn()
			return nil, nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	default:
		return memorystore.NewTodoStore(), func() {}, nil
	}
}

func waitReady(ctx context.Context, repo todo.Repository, attempts int, logger *jsonlog.Logger) error {
	err := retry.Do(ctx, attempts, retry.DefaultBackoff(), repo.PingContext,
		func(attempt int, err error, wait time.Duration) {
			logger.Warn("store not ready", map[string]any{
				"attempt": attempt,
				"error":   err.Error(),
				"wait_ms": wait.Milliseconds(),
			})
		})
	if err != nil {
		return fmt.Errorf("store ping: %w", err)
	}
	return nil
}
