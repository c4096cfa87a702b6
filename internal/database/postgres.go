package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/elif-d/StudioFitBack/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool sized per the loaded config and verifies the
// connection before handing it back. Callers own the pool and close it on
// shutdown.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pingCtx := ctx
	if cfg.StorageTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.StorageTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Println("Connected to PostgreSQL")
	return pool, nil
}
