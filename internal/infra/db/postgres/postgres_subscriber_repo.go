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

var _ repository.SubscriberRepository = (*PostgresSubscriberRepo)(nil)

type PostgresSubscriberRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriberRepo(pool *pgxpool.Pool) *PostgresSubscriberRepo {
	return &PostgresSubscriberRepo{pool: pool}
}

func (r *PostgresSubscriberRepo) Upsert(ctx context.Context, tx repository.Tx, s *model.Subscriber) error {
	// subscribed_at is written once on insert and never updated.
	const q = `
INSERT INTO subscribers (chat_id, display_name, city, active, subscribed_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (chat_id) DO UPDATE SET
  display_name=$2, city=$3, active=$4;
`
	_, err := pickExec(ctx, r.pool, tx, q, s.ChatID, s.DisplayName, s.City, s.Active, s.SubscribedAt)
	if err != nil {
		return fmt.Errorf("upsert subscriber %d: %w", s.ChatID, err)
	}
	return nil
}

func (r *PostgresSubscriberRepo) FindByChatID(ctx context.Context, tx repository.Tx, chatID int64) (*model.Subscriber, error) {
	const q = `
SELECT chat_id, display_name, city, active, subscribed_at
  FROM subscribers WHERE chat_id=$1;
`
	row := pickRow(ctx, r.pool, tx, q, chatID)
	var s model.Subscriber
	if err := row.Scan(&s.ChatID, &s.DisplayName, &s.City, &s.Active, &s.SubscribedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSubscriberRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Subscriber, error) {
	const q = `
SELECT chat_id, display_name, city, active, subscribed_at
  FROM subscribers WHERE active;
`
	rows, err := pickQuery(ctx, r.pool, tx, q)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	defer rows.Close()

	var out []*model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ChatID, &s.DisplayName, &s.City, &s.Active, &s.SubscribedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSubscriberRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	row := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM subscribers WHERE active;`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count active subscribers: %w", err)
	}
	return n, nil
}

func (r *PostgresSubscriberRepo) SetActive(ctx context.Context, tx repository.Tx, chatID int64, active bool) error {
	tag, err := pickExec(ctx, r.pool, tx, `UPDATE subscribers SET active=$2 WHERE chat_id=$1;`, chatID, active)
	if err != nil {
		return fmt.Errorf("set subscriber %d active=%t: %w", chatID, active, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
