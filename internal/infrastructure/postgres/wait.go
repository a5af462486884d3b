package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by *pgxpool.Pool and *pgx.Conn.
type Pinger interface {
	Ping(ctx context.Context) error
}

// sleep is swapped in tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WaitForDB blocks until p answers a ping. attempts <= 0 retries until ctx is done.
func WaitForDB(ctx context.Context, p Pinger, attempts int, interval time.Duration, logger *logrus.Logger) error {
	var lastErr error
	for i := 1; attempts <= 0 || i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = p.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			if logger != nil {
				logger.WithField("attempt", i).Info("database available")
			}
			return nil
		}
		if logger != nil {
			logger.WithError(lastErr).WithField("attempt", i).Warn("database unavailable, waiting")
		}
		if err := sleep(ctx, interval); err != nil {
			return fmt.Errorf("wait for db: %w", err)
		}
	}
	return fmt.Errorf("wait for db: gave up after %d attempts: %w", attempts, lastErr)
}
