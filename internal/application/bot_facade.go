package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/domain/ports/adapter"
	"telegram-weather-bot/internal/usecase"
)

const helpText = `🌦️ Weather Bot Commands 🌦️

User Commands:
/subscribe <city> - Get daily weather updates for a city
/unsubscribe - Stop receiving weather updates
/weather <city> - Get current weather for a specific city

Admin Commands:
/admin - Access admin panel
/setapikey <key> - Update weather API key
/block <userId> - Block a user from receiving updates
/unblock <userId> - Unblock a user
/listusers - View all subscribers`

const notAuthorizedText = "You are not authorized to use this command."

// BotFacade composes usecases into high-level bot commands.
// Methods return the reply text so the Telegram adapter just forwards it to
// the chat; a non-nil error means the handler failed and the adapter should
// send a per-command apology instead.
//
// Admin commands are gated on the sender's numeric Telegram ID. Display names
// are user-controlled and spoofable, so they are never used for authorization.
type BotFacade struct {
	SubUC      *usecase.SubscriptionUseCase
	SettingsUC *usecase.SettingsUseCase
	StatsUC    *usecase.StatsUseCase
	Weather    adapter.WeatherProvider

	adminIDs map[int64]struct{}
	log      *zerolog.Logger
}

func NewBotFacade(
	subUC *usecase.SubscriptionUseCase,
	settingsUC *usecase.SettingsUseCase,
	statsUC *usecase.StatsUseCase,
	weather adapter.WeatherProvider,
	adminIDs []int64,
	logger *zerolog.Logger,
) *BotFacade {
	m := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		m[id] = struct{}{}
	}
	return &BotFacade{
		SubUC:      subUC,
		SettingsUC: settingsUC,
		StatsUC:    statsUC,
		Weather:    weather,
		adminIDs:   m,
		log:        logger,
	}
}

func (b *BotFacade) IsAdmin(chatID int64) bool {
	_, ok := b.adminIDs[chatID]
	return ok
}

// authorized is the admin gate shared by all privileged handlers. Rejected
// attempts are logged but never surface as errors: the caller replies with the
// not-authorized text and nothing is mutated.
func (b *BotFacade) authorized(chatID int64, command string) bool {
	if b.IsAdmin(chatID) {
		return true
	}
	b.log.Warn().Int64("chat_id", chatID).Str("command", command).Msg("unauthorized admin command")
	return false
}

// HandleStart returns the static help text listing all commands.
func (b *BotFacade) HandleStart() string { return helpText }

func (b *BotFacade) HandleSubscribe(ctx context.Context, chatID int64, displayName, city string) (string, error) {
	changed, err := b.SubUC.Subscribe(ctx, chatID, displayName, city)
	if err != nil {
		return "", fmt.Errorf("subscribe chat %d: %w", chatID, err)
	}
	if !changed {
		return "You are already subscribed. Use /unsubscribe first if you want to change your subscription.", nil
	}
	return fmt.Sprintf("You've been subscribed to daily weather updates for %s", city), nil
}

func (b *BotFacade) HandleUnsubscribe(ctx context.Context, chatID int64) (string, error) {
	removed, err := b.SubUC.Unsubscribe(ctx, chatID)
	if err != nil {
		return "", fmt.Errorf("unsubscribe chat %d: %w", chatID, err)
	}
	if !removed {
		return "You are not subscribed to weather updates.", nil
	}
	return "You've been unsubscribed from weather updates.", nil
}

// HandleWeather performs a one-shot lookup for city and returns the formatted
// weather reply. The provider key is read from the settings store so an admin
// /setapikey takes effect immediately.
func (b *BotFacade) HandleWeather(ctx context.Context, city string) (string, error) {
	apiKey, err := b.SettingsUC.WeatherAPIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("load weather api key: %w", err)
	}
	report, err := b.Weather.Current(ctx, city, apiKey)
	if err != nil {
		return "", fmt.Errorf("weather for %q: %w", city, err)
	}
	return report.Format(), nil
}

// HandleAdminPanel returns the admin summary: subscriber count, current API
// key and the admin command list.
func (b *BotFacade) HandleAdminPanel(ctx context.Context, chatID int64) (string, error) {
	if !b.authorized(chatID, "/admin") {
		return "You are not authorized to access the admin panel.", nil
	}
	summary, err := b.StatsUC.Summary(ctx)
	if err != nil {
		return "", fmt.Errorf("admin summary: %w", err)
	}
	return fmt.Sprintf("🔧 Admin Panel\n\n"+
		"Total Subscribers: %d\n"+
		"Current API Key: %s\n\n"+
		"Commands:\n"+
		"/setapikey <key> - Update Weather API key\n"+
		"/block <userId> - Block a user\n"+
		"/unblock <userId> - Unblock a user\n"+
		"/listusers - List all subscribers",
		summary.ActiveSubscribers, summary.WeatherAPIKey), nil
}

func (b *BotFacade) HandleSetAPIKey(ctx context.Context, chatID int64, apiKey string) (string, error) {
	if !b.authorized(chatID, "/setapikey") {
		return notAuthorizedText, nil
	}
	if err := b.SettingsUC.SetWeatherAPIKey(ctx, apiKey); err != nil {
		return "", fmt.Errorf("set api key: %w", err)
	}
	return "API key updated successfully", nil
}

func (b *BotFacade) HandleBlock(ctx context.Context, chatID, targetID int64) (string, error) {
	if !b.authorized(chatID, "/block") {
		return notAuthorizedText, nil
	}
	if err := b.SubUC.SetActive(ctx, targetID, false); err != nil {
		return "", fmt.Errorf("block user %d: %w", targetID, err)
	}
	return fmt.Sprintf("User %d has been blocked", targetID), nil
}

func (b *BotFacade) HandleUnblock(ctx context.Context, chatID, targetID int64) (string, error) {
	if !b.authorized(chatID, "/unblock") {
		return notAuthorizedText, nil
	}
	if err := b.SubUC.SetActive(ctx, targetID, true); err != nil {
		return "", fmt.Errorf("unblock user %d: %w", targetID, err)
	}
	return fmt.Sprintf("User %d has been unblocked", targetID), nil
}

func (b *BotFacade) HandleListUsers(ctx context.Context, chatID int64) (string, error) {
	if !b.authorized(chatID, "/listusers") {
		return notAuthorizedText, nil
	}
	subscribers, err := b.SubUC.ListActive(ctx)
	if err != nil {
		return "", fmt.Errorf("list subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		return "No active subscribers", nil
	}
	lines := make([]string, 0, len(subscribers))
	for _, s := range subscribers {
		lines = append(lines, fmt.Sprintf("ID: %d, Username: %s, City: %s", s.ChatID, s.DisplayName, s.City))
	}
	return strings.Join(lines, "\n"), nil
}
