package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"salary-bias-service/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS model_predictions (
	id                  BIGSERIAL PRIMARY KEY,
	model_type          TEXT NOT NULL,
	test_dataset        TEXT NOT NULL,
	mean_absolute_error DOUBLE PRECISION NOT NULL,
	phase               TEXT NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS survey_sessions (
	id           UUID PRIMARY KEY,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	participant  TEXT NOT NULL,
	sample_size  INTEGER NOT NULL,
	sample_count INTEGER NOT NULL,
	responses    JSONB NOT NULL DEFAULT '{}'::jsonb
);
`

// EnsureSchema creates the tables this service writes to.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// NewPool opens and pings a pool. Callers own the pool and must Close it.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}
