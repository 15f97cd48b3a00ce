package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-weather-bot/internal/domain"
	"telegram-weather-bot/internal/domain/model"
	"telegram-weather-bot/internal/domain/ports/repository"
)

var _ repository.SettingRepository = (*PostgresSettingRepo)(nil)

type PostgresSettingRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSettingRepo(pool *pgxpool.Pool) *PostgresSettingRepo {
	return &PostgresSettingRepo{pool: pool}
}

func (r *PostgresSettingRepo) Get(ctx context.Context, tx repository.Tx, key string) (*model.Setting, error) {
	row := pickRow(ctx, r.pool, tx, `SELECT key, value, updated_at FROM settings WHERE key=$1;`, key)
	var s model.Setting
	if err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSettingRepo) Set(ctx context.Context, tx repository.Tx, key, value string) error {
	const q = `
INSERT INTO settings (key, value, updated_at) VALUES ($1,$2,now())
ON CONFLICT (key) DO UPDATE SET value=$2, updated_at=now();
`
	if _, err := pickExec(ctx, r.pool, tx, q, key, value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (r *PostgresSettingRepo) SetIfAbsent(ctx context.Context, tx repository.Tx, key, value string) error {
	const q = `
INSERT INTO settings (key, value, updated_at) VALUES ($1,$2,now())
ON CONFLICT (key) DO NOTHING;
`
	if _, err := pickExec(ctx, r.pool, tx, q, key, value); err != nil {
		return fmt.Errorf("seed setting %s: %w", key, err)
	}
	return nil
}
