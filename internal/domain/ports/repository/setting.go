package repository

import (
	"context"

	"telegram-weather-bot/internal/domain/model"
)

// SettingRepository persists key/value configuration records.
type SettingRepository interface {
	// Get returns domain.ErrNotFound when the key is absent.
	Get(ctx context.Context, tx Tx, key string) (*model.Setting, error)
	// Set upserts the value for key.
	Set(ctx context.Context, tx Tx, key, value string) error
	// SetIfAbsent inserts the value only when the key does not exist yet, so
	// that startup seeding never clobbers an operator-customized value.
	SetIfAbsent(ctx context.Context, tx Tx, key, value string) error
}
