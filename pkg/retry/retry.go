package retry

import (
	"context"
	"time"
)

// Policy controls the bounded exponential backoff applied between attempts.
// The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	Retries       int           // total attempts, not additional ones
	BaseDelay     time.Duration // delay before the second attempt
	MaxDelay      time.Duration // cap on a single backoff sleep
	BackoffFactor float64
}

// DefaultPolicy matches the model endpoint's observed quota behavior:
// 2s, 4s, 8s, 16s between the five attempts, each sleep capped at 70s.
var DefaultPolicy = Policy{
	Retries:       5,
	BaseDelay:     2 * time.Second,
	MaxDelay:      70 * time.Second,
	BackoffFactor: 2,
}

// Do executes op up to p.Retries times, sleeping
// min(BaseDelay*BackoffFactor^attempt, MaxDelay) between failures. The last
// error is returned after the final attempt. The context aborts a pending
// backoff sleep, not an in-flight attempt.
func Do(ctx context.Context, p Policy, op func() (string, error)) (string, error) {
	retries := p.Retries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			sleep := delay
			if p.MaxDelay > 0 && sleep > p.MaxDelay {
				sleep = p.MaxDelay
			}
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			delay = time.Duration(float64(delay) * p.BackoffFactor)
		}

		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return "", lastErr
}
