// Package telegram dispatches inbound updates to the BotFacade and sends
// replies through tgbotapi.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/application"
	"telegram-weather-bot/internal/config"
	"telegram-weather-bot/internal/domain/ports/adapter"
	"telegram-weather-bot/internal/infra/metrics"
	red "telegram-weather-bot/internal/infra/redis"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// RealTelegramBotAdapter feeds updates (from long polling or from the webhook
// endpoint) through a buffered channel into a fixed set of worker goroutines.
// Every handled command produces exactly one reply, apology text included, and
// no handler failure ever escapes a worker.
type RealTelegramBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	facade      *application.BotFacade
	rateLimiter *red.RateLimiter // nil disables rate limiting

	updateWorkers int
	updateChan    chan tgbotapi.Update
	log           *zerolog.Logger
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, rateLimiter *red.RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		rateLimiter:   rateLimiter,
		updateWorkers: workers,
		updateChan:    make(chan tgbotapi.Update, 100),
		log:           logger,
	}, nil
}

// Run processes updates until ctx is canceled. In polling mode it also pumps
// GetUpdatesChan into the worker channel; in webhook mode it registers the
// webhook URL and relies on Enqueue being called by the HTTP endpoint.
func (r *RealTelegramBotAdapter) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-r.updateChan:
					if err := r.handleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	switch r.cfg.Mode {
	case "webhook":
		wh, err := tgbotapi.NewWebhook(fmt.Sprintf("%s/bot%s", strings.TrimRight(r.cfg.WebhookURL, "/"), r.cfg.Token))
		if err != nil {
			return fmt.Errorf("build webhook config: %w", err)
		}
		if _, err := r.bot.Request(wh); err != nil {
			return fmt.Errorf("register webhook: %w", err)
		}
		r.log.Info().Str("url", r.cfg.WebhookURL).Msg("webhook registered")
		<-ctx.Done()

	default: // polling
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates := r.bot.GetUpdatesChan(u)
		r.log.Info().Int("workers", r.updateWorkers).Msg("polling for updates")
	pump:
		for {
			select {
			case <-ctx.Done():
				break pump
			case up := <-updates:
				r.Enqueue(up)
			}
		}
		r.bot.StopReceivingUpdates()
	}

	wg.Wait()
	return ctx.Err()
}

// Enqueue hands an update to the worker pool. Drops the update when the
// buffer is full rather than blocking the webhook response.
func (r *RealTelegramBotAdapter) Enqueue(up tgbotapi.Update) {
	select {
	case r.updateChan <- up:
	default:
		r.log.Warn().Msg("update channel full, dropping update")
	}
}

// SendMessage implements the outbound port with Markdown parse mode.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	msg := update.Message
	chatID := msg.Chat.ID
	from := msg.From

	fields := strings.SplitN(msg.Text, " ", 2)
	command := fields[0]
	var arg string
	if len(fields) > 1 {
		arg = strings.TrimSpace(fields[1])
	}
	if !strings.HasPrefix(command, "/") {
		return nil
	}

	log := r.log.With().Str("trace_id", uuid.NewString()).Int64("chat_id", chatID).Str("command", command).Logger()

	if r.rateLimiter != nil {
		allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(from.ID, command), 20, time.Minute)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable")
		} else if !allowed {
			return r.SendMessage(ctx, chatID, "Rate limit exceeded. Please try again later.")
		}
	}

	metrics.IncCommand(command)
	displayName := strings.TrimSpace(from.FirstName + " " + from.LastName)

	var (
		reply string
		err   error
	)
	switch command {
	case "/start", "/help":
		reply = r.facade.HandleStart()

	case "/subscribe":
		if arg == "" {
			return r.SendMessage(ctx, chatID, "Usage: /subscribe <city>")
		}
		reply, err = r.facade.HandleSubscribe(ctx, chatID, displayName, arg)
		if err != nil {
			reply = "Failed to subscribe. Please try again later."
		}

	case "/unsubscribe":
		reply, err = r.facade.HandleUnsubscribe(ctx, chatID)
		if err != nil {
			reply = "Failed to unsubscribe. Please try again later."
		}

	case "/weather":
		if arg == "" {
			return r.SendMessage(ctx, chatID, "Usage: /weather <city>")
		}
		reply, err = r.facade.HandleWeather(ctx, arg)
		if err != nil {
			reply = fmt.Sprintf("Sorry, I couldn't fetch weather information for %s. Please check the city name and try again.", arg)
		}

	case "/admin":
		reply, err = r.facade.HandleAdminPanel(ctx, chatID)
		if err != nil {
			reply = "Failed to fetch admin panel information. Please try again later."
		}

	case "/setapikey":
		if arg == "" {
			return r.SendMessage(ctx, chatID, "Usage: /setapikey <key>")
		}
		reply, err = r.facade.HandleSetAPIKey(ctx, chatID, arg)
		if err != nil {
			reply = "Failed to update the API key. Please try again later."
		}

	case "/block":
		targetID, perr := strconv.ParseInt(arg, 10, 64)
		if perr != nil {
			return r.SendMessage(ctx, chatID, "Usage: /block <userId>")
		}
		reply, err = r.facade.HandleBlock(ctx, chatID, targetID)
		if err != nil {
			reply = fmt.Sprintf("Failed to block user %d.", targetID)
		}

	case "/unblock":
		targetID, perr := strconv.ParseInt(arg, 10, 64)
		if perr != nil {
			return r.SendMessage(ctx, chatID, "Usage: /unblock <userId>")
		}
		reply, err = r.facade.HandleUnblock(ctx, chatID, targetID)
		if err != nil {
			reply = fmt.Sprintf("Failed to unblock user %d.", targetID)
		}

	case "/listusers":
		reply, err = r.facade.HandleListUsers(ctx, chatID)
		if err != nil {
			reply = "Failed to list subscribers. Please try again later."
		}

	default:
		return nil
	}

	if err != nil {
		metrics.IncCommandError(command)
		log.Error().Err(err).Msg("command handler failed")
	}
	return r.SendMessage(ctx, chatID, reply)
}
