package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/domain"
	"telegram-weather-bot/internal/domain/model"
	"telegram-weather-bot/internal/domain/ports/repository"
)

// SubscriptionUseCase implements subscriber lifecycle operations.
//
// Subscribers are never physically removed: unsubscribe and admin block both
// flip the active flag, and only active records count for broadcast and
// "already subscribed" checks.
type SubscriptionUseCase struct {
	subs repository.SubscriberRepository
	log  *zerolog.Logger
}

func NewSubscriptionUseCase(subs repository.SubscriberRepository, logger *zerolog.Logger) *SubscriptionUseCase {
	return &SubscriptionUseCase{subs: subs, log: logger}
}

// Subscribe creates or reactivates a subscription for chatID.
// Returns false (no error) when an active record already targets the same
// city: already-subscribed is a normal outcome. Re-subscribing with a
// different city, or while inactive, updates the city and reactivates the
// existing record.
func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, chatID int64, displayName, city string) (bool, error) {
	existing, err := uc.subs.FindByChatID(ctx, repository.NoTX, chatID)
	switch {
	case err == nil:
		if existing.Active && existing.City == city {
			uc.log.Info().Int64("chat_id", chatID).Str("city", city).Msg("already subscribed")
			return false, nil
		}
		existing.City = city
		existing.DisplayName = displayName
		existing.Active = true
		if err := uc.subs.Upsert(ctx, repository.NoTX, existing); err != nil {
			return false, err
		}
		uc.log.Info().Int64("chat_id", chatID).Str("city", city).Msg("subscription updated")
		return true, nil

	case errors.Is(err, domain.ErrNotFound):
		s, err := model.NewSubscriber(chatID, displayName, city)
		if err != nil {
			return false, err
		}
		if err := uc.subs.Upsert(ctx, repository.NoTX, s); err != nil {
			return false, err
		}
		uc.log.Info().Int64("chat_id", chatID).Str("city", city).Msg("subscribed")
		return true, nil

	default:
		return false, err
	}
}

// Unsubscribe soft-deletes the subscription. Returns false when no record
// exists for chatID; returns true even when the record was already inactive.
func (uc *SubscriptionUseCase) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	err := uc.subs.SetActive(ctx, repository.NoTX, chatID, false)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	uc.log.Info().Int64("chat_id", chatID).Msg("unsubscribed")
	return true, nil
}

// IsSubscribed reflects only the active flag: a blocked or unsubscribed chat
// reports false even though its record still exists.
func (uc *SubscriptionUseCase) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	s, err := uc.subs.FindByChatID(ctx, repository.NoTX, chatID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.Active, nil
}

func (uc *SubscriptionUseCase) ListActive(ctx context.Context) ([]*model.Subscriber, error) {
	return uc.subs.ListActive(ctx, repository.NoTX)
}

// SetActive is the admin block/unblock entry point. An unknown chatID is
// logged and swallowed: block/unblock on a nonexistent id must not fail the
// admin flow.
func (uc *SubscriptionUseCase) SetActive(ctx context.Context, chatID int64, active bool) error {
	err := uc.subs.SetActive(ctx, repository.NoTX, chatID, active)
	if errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn().Int64("chat_id", chatID).Bool("active", active).Msg("toggle on unknown subscriber")
		return nil
	}
	if err != nil {
		return err
	}
	uc.log.Info().Int64("chat_id", chatID).Bool("active", active).Msg("subscriber toggled")
	return nil
}
