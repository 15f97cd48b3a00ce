package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/domain/ports/adapter"
	"telegram-weather-bot/internal/infra/metrics"
)

// BroadcastUseCase sends one weather message per active subscriber.
//
// Each tick is an independent pass: the subscriber list and the API key are
// read fresh, every subscriber gets at most one attempt, and a failure for one
// subscriber never aborts the rest. Only a failure loading the list or the key
// aborts the whole tick.
type BroadcastUseCase struct {
	subUC      *SubscriptionUseCase
	settingsUC *SettingsUseCase
	weather    adapter.WeatherProvider
	bot        adapter.TelegramBotAdapter
	// throttle spaces out sends to respect Telegram's API limits
	// (approx. 30 messages/sec).
	throttle time.Duration
	log      *zerolog.Logger
}

func NewBroadcastUseCase(
	subUC *SubscriptionUseCase,
	settingsUC *SettingsUseCase,
	weather adapter.WeatherProvider,
	bot adapter.TelegramBotAdapter,
	logger *zerolog.Logger,
) *BroadcastUseCase {
	return &BroadcastUseCase{
		subUC:      subUC,
		settingsUC: settingsUC,
		weather:    weather,
		bot:        bot,
		throttle:   time.Second / 25,
		log:        logger,
	}
}

// Tick runs one broadcast pass and reports per-subscriber outcomes.
func (uc *BroadcastUseCase) Tick(ctx context.Context) (sent, failed int, err error) {
	subscribers, err := uc.subUC.ListActive(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("failed to load active subscribers")
		return 0, 0, err
	}
	apiKey, err := uc.settingsUC.WeatherAPIKey(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("failed to load weather API key")
		return 0, 0, err
	}

	uc.log.Info().Int("subscriber_count", len(subscribers)).Msg("starting broadcast tick")

	ticker := time.NewTicker(uc.throttle)
	defer ticker.Stop()

	for _, sub := range subscribers {
		select {
		case <-ctx.Done():
			return sent, failed, ctx.Err()
		case <-ticker.C:
		}

		report, err := uc.weather.Current(ctx, sub.City, apiKey)
		if err != nil {
			uc.log.Warn().Err(err).Int64("chat_id", sub.ChatID).Str("city", sub.City).
				Msg("weather lookup failed, skipping subscriber")
			failed++
			continue
		}
		if err := uc.bot.SendMessage(ctx, sub.ChatID, report.Format()); err != nil {
			uc.log.Warn().Err(err).Int64("chat_id", sub.ChatID).
				Msg("failed to send broadcast message")
			failed++
			continue
		}
		sent++
	}

	metrics.AddBroadcastSent(sent)
	metrics.AddBroadcastFailed(failed)
	uc.log.Info().Int("sent", sent).Int("failed", failed).Msg("broadcast tick finished")
	return sent, failed, nil
}
