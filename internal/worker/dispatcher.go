package worker

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/service/dispatch"
)

type dispatchEngine interface {
	ProcessPending(ctx context.Context) (dispatch.Stats, error)
	RetryFailed(ctx context.Context) (dispatch.Stats, error)
}

// Dispatcher owns the clock the dispatch engine deliberately does not have:
// it ticks ProcessPending and, on a slower cadence, RetryFailed until the
// context is cancelled.
type Dispatcher struct {
	engine        dispatchEngine
	interval      time.Duration
	retryInterval time.Duration
}

// NewDispatcher creates the polling loop around the dispatch engine.
func NewDispatcher(engine dispatchEngine, interval, retryInterval time.Duration) *Dispatcher {
	return &Dispatcher{
		engine:        engine,
		interval:      interval,
		retryInterval: retryInterval,
	}
}

// Run blocks until ctx is done, invoking the engine on both tickers. One pass
// runs to completion before the next starts; an overlapping tick is absorbed
// by the ticker rather than spawning a concurrent pass.
func (d *Dispatcher) Run(ctx context.Context) {
	dispatchTicker := time.NewTicker(d.interval)
	defer dispatchTicker.Stop()

	retryTicker := time.NewTicker(d.retryInterval)
	defer retryTicker.Stop()

	zlog.Logger.Info().
		Dur("interval", d.interval).
		Dur("retry_interval", d.retryInterval).
		Msg("dispatcher started")

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("dispatcher stopped")
			return
		case <-dispatchTicker.C:
			stats, err := d.engine.ProcessPending(ctx)
			if err != nil {
				zlog.Logger.Error().Err(err).Msg("process pending failed")
				continue
			}

			if stats.Total > 0 {
				zlog.Logger.Info().
					Int("total", stats.Total).
					Int("success", stats.Success).
					Int("failed", stats.Failed).
					Msg("dispatch pass finished")
			}
		case <-retryTicker.C:
			stats, err := d.engine.RetryFailed(ctx)
			if err != nil {
				zlog.Logger.Error().Err(err).Msg("retry sweep failed")
				continue
			}

			if stats.Total > 0 {
				zlog.Logger.Info().
					Int("total", stats.Total).
					Int("success", stats.Success).
					Int("failed", stats.Failed).
					Msg("retry sweep finished")
			}
		}
	}
}
