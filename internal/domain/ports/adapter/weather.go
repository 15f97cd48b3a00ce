package adapter

import (
	"context"

	"telegram-weather-bot/internal/domain/model"
)

// WeatherProvider fetches the current weather for a city. Each call is one
// fresh network round trip: no retry, no caching.
type WeatherProvider interface {
	Current(ctx context.Context, city, apiKey string) (*model.WeatherReport, error)
}
