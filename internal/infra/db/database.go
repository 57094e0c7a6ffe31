package db

import (
	"context"
	"fmt"
	"time"

	"table-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, pool.Close, nil
}

// OverlapConstraint is the exclusion constraint that rejects overlapping active reservations
// on the same table. Admission relies on it as the last line against double booking.
const OverlapConstraint = "reservations_no_overlap"

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VerifySchema fails when migrations have not installed the overlap constraint.
func VerifySchema(ctx context.Context, q querier) error {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = $1 AND contype = 'x')`,
		OverlapConstraint).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("constraint %s is missing, run migrations first", OverlapConstraint)
	}
	return nil
}
