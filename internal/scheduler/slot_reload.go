package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/marketboard/internal/logger"
)

// Syncer is implemented by *market.Service.
type Syncer interface {
	Sync(ctx context.Context) (bool, error)
}

// SlotReloader periodically re-reads the listing slot so that changes made by
// another process (the CLI, a second server on the same redis key) show up.
type SlotReloader struct {
	syncer        Syncer
	logger        logger.Logger
	interval      time.Duration
	manualTrigger chan struct{}
	stopCh        chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
}

// NewSlotReloader creates a reloader. manualTrigger may be nil.
func NewSlotReloader(syncer Syncer, log logger.Logger, interval time.Duration, manualTrigger chan struct{}) *SlotReloader {
	return &SlotReloader{
		syncer:        syncer,
		logger:        log.Named("reloader"),
		interval:      interval,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start runs the reload loop in a goroutine. A non-positive interval disables
// the ticker; manual triggers still work.
func (sr *SlotReloader) Start(ctx context.Context) {
	var tick <-chan time.Time
	if sr.interval > 0 {
		ticker := time.NewTicker(sr.interval)
		tick = ticker.C
		go func() {
			<-sr.done
			ticker.Stop()
		}()
	}

	go func() {
		defer close(sr.done)
		for {
			select {
			case <-tick:
				sr.Reload(ctx)
			case <-sr.manualTrigger:
				sr.logger.Info("manual reload triggered")
				sr.Reload(ctx)
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the loop and waits for it to exit.
func (sr *SlotReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
	<-sr.done
}

// Reload syncs once and reports whether the board changed.
func (sr *SlotReloader) Reload(ctx context.Context) bool {
	changed, err := sr.syncer.Sync(ctx)
	if err != nil {
		sr.logger.Warn("failed to reload listings, keeping current board", logger.Error(err))
		return false
	}
	if !changed {
		sr.logger.Debug("listings unchanged")
	}
	return changed
}
