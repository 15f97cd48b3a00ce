package repository

import (
	"context"

	"telegram-weather-bot/internal/domain/model"
)

// SubscriberRepository persists subscriber records, one per chat ID.
type SubscriberRepository interface {
	// Upsert creates the record or replaces name, city and active flag of an
	// existing one. SubscribedAt is preserved on update.
	Upsert(ctx context.Context, tx Tx, s *model.Subscriber) error
	// FindByChatID returns domain.ErrNotFound when no record exists.
	FindByChatID(ctx context.Context, tx Tx, chatID int64) (*model.Subscriber, error)
	// ListActive returns all records with Active=true, order unspecified.
	ListActive(ctx context.Context, tx Tx) ([]*model.Subscriber, error)
	CountActive(ctx context.Context, tx Tx) (int, error)
	// SetActive sets the active flag unconditionally.
	// Returns domain.ErrNotFound when no record exists.
	SetActive(ctx context.Context, tx Tx, chatID int64, active bool) error
}
