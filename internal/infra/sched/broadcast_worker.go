package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/infra/metrics"
)

// Broadcaster runs one broadcast pass. Implemented by usecase.BroadcastUseCase.
type Broadcaster interface {
	Tick(ctx context.Context) (sent, failed int, err error)
}

// BroadcastWorker drives the broadcast use case on a fixed wall-clock
// interval. The first tick fires one full interval after startup; each tick is
// independent and a failed tick does not affect the next one.
type BroadcastWorker struct {
	interval    time.Duration
	broadcastUC Broadcaster
	log         *zerolog.Logger
}

func NewBroadcastWorker(interval time.Duration, broadcastUC Broadcaster, logger *zerolog.Logger) *BroadcastWorker {
	compLog := logger.With().Str("component", "BroadcastWorker").Logger()
	return &BroadcastWorker{
		interval:    interval,
		broadcastUC: broadcastUC,
		log:         &compLog,
	}
}

func (w *BroadcastWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting broadcast worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping broadcast worker")
			return ctx.Err()
		case <-ticker.C:
			w.runTick(ctx)
		}
	}
}

func (w *BroadcastWorker) runTick(ctx context.Context) {
	sent, failed, err := w.broadcastUC.Tick(ctx)
	if err != nil {
		metrics.IncBroadcastTickError()
		w.log.Error().Err(err).Msg("broadcast tick aborted")
		return
	}
	metrics.SetBroadcastLastTick(time.Now().Unix())
	if failed > 0 {
		w.log.Warn().Int("sent", sent).Int("failed", failed).Msg("broadcast tick completed with failures")
	}
}
