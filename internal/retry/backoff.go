package retry

import (
	"context"
	"math/rand"
	"time"
)

type BackoffConfig struct {
	BaseDelay time.Duration // e.g. 250ms
	MaxDelay  time.Duration // e.g. 5s
}

func DefaultBackoff() BackoffConfig {
	return BackoffConfig{
		BaseDelay: 250 * time.Millisecond,
		MaxDelay:  5 * time.Second,
	}
}

// NextDelay computes the wait before the next attempt using exponential
// backoff with full jitter. attempt is 1-based (1 => up to BaseDelay).
func NextDelay(attempt int, cfg BackoffConfig, rng *rand.Rand) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBackoff().BaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultBackoff().MaxDelay
	}

	// base * 2^(attempt-1), guarding the shift against overflow
	delay := cfg.MaxDelay
	if attempt < 32 {
		if d := cfg.BaseDelay << (attempt - 1); d > 0 && d < cfg.MaxDelay {
			delay = d
		}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return time.Duration(rng.Int63n(int64(delay) + 1))
}

// Do calls fn until it succeeds, attempts are exhausted or ctx is done.
// onRetry, if set, sees every failed attempt that will be retried.
func Do(ctx context.Context, attempts int, cfg BackoffConfig, fn func(context.Context) error, onRetry func(attempt int, err error, wait time.Duration)) error {
	if attempts < 1 {
		attempts = 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		wait := NextDelay(attempt, cfg, rng)
		if onRetry != nil {
			onRetry(attempt, err, wait)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
