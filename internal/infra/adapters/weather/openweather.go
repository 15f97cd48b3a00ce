// Package weather implements the WeatherProvider port against the
// OpenWeatherMap current-weather API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"telegram-weather-bot/internal/domain"
	"telegram-weather-bot/internal/domain/model"
	"telegram-weather-bot/internal/domain/ports/adapter"
	"telegram-weather-bot/internal/infra/metrics"
)

var _ adapter.WeatherProvider = (*OpenWeatherClient)(nil)

type OpenWeatherClient struct {
	baseURL string
	client  *http.Client
}

// NewOpenWeatherClient creates a client against baseURL
// (https://api.openweathermap.org in production, an httptest server in tests).
func NewOpenWeatherClient(baseURL string) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// currentResponse is the subset of the OpenWeatherMap payload we project.
type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current fetches the weather for city in metric units. Non-2xx responses and
// structurally unexpected payloads both surface as domain.ErrWeatherLookup.
func (c *OpenWeatherClient) Current(ctx context.Context, city, apiKey string) (*model.WeatherReport, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", apiKey)
	q.Set("units", "metric")
	endpoint := c.baseURL + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.IncWeatherLookup(false)
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.IncWeatherLookup(false)
		return nil, fmt.Errorf("%w: status %d for city %q", domain.ErrWeatherLookup, resp.StatusCode, city)
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.IncWeatherLookup(false)
		return nil, fmt.Errorf("%w: decode payload: %v", domain.ErrWeatherLookup, err)
	}
	if len(body.Weather) == 0 {
		metrics.IncWeatherLookup(false)
		return nil, fmt.Errorf("%w: payload missing weather conditions", domain.ErrWeatherLookup)
	}

	metrics.IncWeatherLookup(true)
	return &model.WeatherReport{
		CityName:    body.Name,
		Temperature: body.Main.Temp,
		Condition:   body.Weather[0].Description,
		WindSpeed:   body.Wind.Speed,
		Humidity:    body.Main.Humidity,
	}, nil
}
