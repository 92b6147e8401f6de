package kafka_client

import (
	"context"
	"time"
)

// withRetry calls fn up to attempts times, waiting delay between failures.
// It stops early with ctx's error when ctx is done during a wait.
func withRetry(ctx context.Context, attempts int, delay time.Duration, fn func(attempt int) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(i + 1); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
