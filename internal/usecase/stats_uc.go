package usecase

import (
	"context"

	"telegram-weather-bot/internal/domain/ports/repository"
)

// AdminSummary backs the /admin panel.
type AdminSummary struct {
	ActiveSubscribers int
	WeatherAPIKey     string
}

// StatsUseCase aggregates store state for admin reporting.
type StatsUseCase struct {
	subs     repository.SubscriberRepository
	settings *SettingsUseCase
}

func NewStatsUseCase(subs repository.SubscriberRepository, settings *SettingsUseCase) *StatsUseCase {
	return &StatsUseCase{subs: subs, settings: settings}
}

func (uc *StatsUseCase) Summary(ctx context.Context) (*AdminSummary, error) {
	count, err := uc.subs.CountActive(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	apiKey, err := uc.settings.WeatherAPIKey(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminSummary{ActiveSubscribers: count, WeatherAPIKey: apiKey}, nil
}
