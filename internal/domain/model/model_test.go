package model

import (
	"errors"
	"strings"
	"testing"

	"telegram-weather-bot/internal/domain"
)

func TestNewSubscriber_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		chatID  int64
		city    string
		wantErr bool
	}{
		{"valid", 42, "London", false},
		{"zero chat id", 0, "London", true},
		{"negative chat id", -5, "London", true},
		{"empty city", 42, "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sub, err := NewSubscriber(tc.chatID, "Alice", tc.city)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sub.Active {
				t.Error("new subscriber must start active")
			}
			if sub.SubscribedAt.IsZero() {
				t.Error("SubscribedAt must be set")
			}
		})
	}
}

func TestWeatherReport_Format(t *testing.T) {
	report := &WeatherReport{
		CityName:    "Paris",
		Temperature: 18.456,
		Condition:   "clear sky",
		WindSpeed:   3.2,
		Humidity:    60,
	}
	got := report.Format()

	for _, want := range []string{
		"🌆 *City*: Paris",
		"🌡️ *Temperature*: 18.5°C",
		"☁️ *Condition*: clear sky",
		"💨 *Wind Speed*: 3.2 m/s",
		"💧 *Humidity*: 60%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q in:\n%s", want, got)
		}
	}
}
