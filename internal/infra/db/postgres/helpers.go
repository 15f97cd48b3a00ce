package postgres

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-weather-bot/internal/domain/ports/repository"
)

// pickRow routes a single-row query through the transaction when one is
// passed, and through the pool otherwise. Repositories must accept
// repository.NoTX (nil) for the non-transactional path.
func pickRow(ctx context.Context, pool *pgxpool.Pool, tx repository.Tx, sql string, args ...interface{}) pgx.Row {
	if t, ok := tx.(pgx.Tx); ok && t != nil {
		return t.QueryRow(ctx, sql, args...)
	}
	return pool.QueryRow(ctx, sql, args...)
}

func pickQuery(ctx context.Context, pool *pgxpool.Pool, tx repository.Tx, sql string, args ...interface{}) (pgx.Rows, error) {
	if t, ok := tx.(pgx.Tx); ok && t != nil {
		return t.Query(ctx, sql, args...)
	}
	return pool.Query(ctx, sql, args...)
}

func pickExec(ctx context.Context, pool *pgxpool.Pool, tx repository.Tx, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	if t, ok := tx.(pgx.Tx); ok && t != nil {
		return t.Exec(ctx, sql, args...)
	}
	return pool.Exec(ctx, sql, args...)
}
