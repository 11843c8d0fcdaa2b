package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher reloads application data.
type Refresher interface {
	Refresh(ctx context.Context)
}

// StartPoller launches a background goroutine that calls Refresh at a fixed
// cadence until ctx is done. A non-positive interval disables polling. It
// returns immediately.
func StartPoller(ctx context.Context, r Refresher, interval time.Duration, log *zap.Logger) {
	if interval <= 0 || r == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("poller")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("periodic refresh")
				r.Refresh(ctx)
			}
		}
	}()
}
