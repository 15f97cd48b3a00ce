package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/application"
	"telegram-weather-bot/internal/config"
	"telegram-weather-bot/internal/domain/model"
	tele "telegram-weather-bot/internal/infra/adapters/telegram"
	"telegram-weather-bot/internal/infra/adapters/weather"
	pg "telegram-weather-bot/internal/infra/db/postgres"
	httpapi "telegram-weather-bot/internal/infra/http"
	"telegram-weather-bot/internal/infra/logging"
	"telegram-weather-bot/internal/infra/metrics"
	red "telegram-weather-bot/internal/infra/redis"
	"telegram-weather-bot/internal/infra/sched"
	"telegram-weather-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	// ---- Repositories ----
	subRepo := pg.NewPostgresSubscriberRepo(pool)
	settingRepo := pg.NewPostgresSettingRepo(pool)

	// ---- Use cases ----
	subUC := usecase.NewSubscriptionUseCase(subRepo, logging.Component(logger, "SubscriptionUC"))
	settingsUC := usecase.NewSettingsUseCase(settingRepo, logging.Component(logger, "SettingsUC"))
	statsUC := usecase.NewStatsUseCase(subRepo, settingsUC)

	// Seed required settings; existing values are never overwritten, so an
	// admin-set API key survives restarts.
	if err := settingsUC.Seed(ctx, map[string]string{
		model.SettingWeatherAPIKey:  cfg.Weather.APIKey,
		model.SettingUpdateInterval: cfg.Broadcast.IntervalHours,
	}); err != nil {
		logger.Fatal().Err(err).Msg("settings seed failed")
	}

	// ---- Redis (optional, rate limiting only) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis not configured, command rate limiting disabled")
	}

	// ---- Weather provider ----
	weatherClient := weather.NewOpenWeatherClient(cfg.Weather.BaseURL)

	// ---- Facade + Telegram ----
	facade := application.NewBotFacade(subUC, settingsUC, statsUC, weatherClient, cfg.Bot.AdminIDs, logging.Component(logger, "BotFacade"))
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, rateLimiter, logging.Component(logger, "Telegram"))
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram init failed")
	}
	go func() {
		if err := botAdapter.Run(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("telegram adapter stopped")
		}
	}()

	// ---- HTTP server (webhook endpoint, /health, /metrics) ----
	srv := httpapi.NewServer(cfg.HTTP.Port, cfg.Bot.Token, botAdapter, logging.Component(logger, "HTTP"))
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Broadcast worker ----
	// The interval comes from the settings store, seeded from process
	// configuration; it is not adjustable at runtime.
	interval := broadcastInterval(ctx, settingsUC, cfg.Broadcast.IntervalHours, logger)
	broadcastUC := usecase.NewBroadcastUseCase(subUC, settingsUC, weatherClient, botAdapter, logging.Component(logger, "BroadcastUC"))
	worker := sched.NewBroadcastWorker(interval, broadcastUC, logger)
	go func() { _ = worker.Run(ctx) }()

	logger.Info().Str("mode", cfg.Bot.Mode).Msg("bot is running")

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
}

// broadcastInterval resolves the tick period in hours from the settings
// store, falling back to the configured default on any problem.
func broadcastInterval(ctx context.Context, settingsUC *usecase.SettingsUseCase, fallback string, logger *zerolog.Logger) time.Duration {
	raw, found, err := settingsUC.Get(ctx, model.SettingUpdateInterval)
	if err != nil || !found {
		raw = fallback
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		logger.Warn().Str("value", raw).Msg("invalid update interval, using 12h")
		hours = 12
	}
	return time.Duration(hours) * time.Hour
}
