package datadog

import (
	"context"
	"time"

	"dogctl/faults"
)

// RetryPolicy bounds re-dispatch of rate-limited and server-failed requests.
// Rate limits back off exponentially from BaseDelay; server errors retry at a
// constant BaseDelay. Nothing else retries.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	return p
}

// Backoff reports whether the failed attempt should be retried and how long
// to wait first. attempt is 1-based.
func (p RetryPolicy) Backoff(err error, attempt int) (time.Duration, bool) {
	if attempt >= p.MaxAttempts {
		return 0, false
	}

	switch {
	case faults.IsCategory(err, faults.RateLimitError):
		delay := p.BaseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}
		return delay, true
	case faults.IsCategory(err, faults.ServerError):
		return p.BaseDelay, true
	default:
		return 0, false
	}
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return faults.NewTypedError(faults.TransportError, "request cancelled while waiting to retry", ctx.Err())
	case <-timer.C:
		return nil
	}
}
