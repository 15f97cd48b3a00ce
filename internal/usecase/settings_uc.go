package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/domain"
	"telegram-weather-bot/internal/domain/model"
	"telegram-weather-bot/internal/domain/ports/repository"
)

// SettingsUseCase wraps the settings store: plain key/value access plus the
// startup seeding of required keys.
type SettingsUseCase struct {
	settings repository.SettingRepository
	log      *zerolog.Logger
}

func NewSettingsUseCase(settings repository.SettingRepository, logger *zerolog.Logger) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, log: logger}
}

// Get returns the stored value, or "" with found=false when the key is absent.
func (uc *SettingsUseCase) Get(ctx context.Context, key string) (string, bool, error) {
	s, err := uc.settings.Get(ctx, repository.NoTX, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s.Value, true, nil
}

func (uc *SettingsUseCase) Set(ctx context.Context, key, value string) error {
	if err := uc.settings.Set(ctx, repository.NoTX, key, value); err != nil {
		return err
	}
	uc.log.Info().Str("key", key).Msg("setting updated")
	return nil
}

// WeatherAPIKey reads the current provider key. The key is read fresh on
// every broadcast tick and lookup so an admin /setapikey takes effect without
// a restart.
func (uc *SettingsUseCase) WeatherAPIKey(ctx context.Context) (string, error) {
	v, found, err := uc.Get(ctx, model.SettingWeatherAPIKey)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (uc *SettingsUseCase) SetWeatherAPIKey(ctx context.Context, key string) error {
	return uc.Set(ctx, model.SettingWeatherAPIKey, key)
}

// Seed inserts defaults for keys that do not exist yet. Existing values are
// left untouched so an admin-set API key survives restarts.
func (uc *SettingsUseCase) Seed(ctx context.Context, defaults map[string]string) error {
	for key, value := range defaults {
		if err := uc.settings.SetIfAbsent(ctx, repository.NoTX, key, value); err != nil {
			return err
		}
	}
	return nil
}
