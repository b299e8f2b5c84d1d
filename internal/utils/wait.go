package utils

import (
	"context"
	"time"
)

const maxBackoff = 30 * time.Second

var sleep = time.Sleep

// WaitFor blocks for d or until ctx is done.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Backoff doubles base for every previous attempt, capped at 30 seconds.
func Backoff(attempt int, base time.Duration) time.Duration {
	if base <= 0 || attempt < 0 {
		return 0
	}

	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
