package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-review/internal/shared/metrics"
	"resume-review/internal/shared/telemetry"
)

// RetryPolicy controls how throttled generation calls are retried.
type RetryPolicy struct {
	BaseDelay  time.Duration
	MaxRetries int
}

// DefaultRetryPolicy waits 5s, 10s and 20s before giving up.
var DefaultRetryPolicy = RetryPolicy{BaseDelay: 5 * time.Second, MaxRetries: 3}

// MaxRetryDelay caps a single backoff wait.
const MaxRetryDelay = 10 * time.Minute

// delay returns the wait before retry number attempt (1-based), doubling from
// BaseDelay and never exceeding MaxRetryDelay.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		if d > MaxRetryDelay/2 {
			return MaxRetryDelay
		}
		d *= 2
	}
	return min(d, MaxRetryDelay)
}

type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type retryingClient struct {
	base   Client
	policy RetryPolicy
	sleep  sleepFunc
}

// WithRateLimitRetry retries base when it reports ErrRateLimited, doubling the
// wait each time. Any other error is returned immediately.
func WithRateLimitRetry(base Client, policy RetryPolicy) Client {
	if base == nil {
		return nil
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	return &retryingClient{base: base, policy: policy, sleep: sleepContext}
}

func (r *retryingClient) AnalyzeResume(ctx context.Context, input AnalyzeInput) (string, error) {
	for attempt := 0; ; attempt++ {
		text, err := r.base.AnalyzeResume(ctx, input)
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return text, err
		}
		metrics.IncLLMRateLimited()
		if attempt >= r.policy.MaxRetries {
			return "", fmt.Errorf("%w: gave up after %d attempts: %v", ErrRateLimitExhausted, attempt+1, err)
		}
		delay := r.policy.delay(attempt + 1)
		telemetry.Warn("llm.rate_limited", map[string]any{
			"attempt": attempt + 1,
			"delayMs": delay.Milliseconds(),
		})
		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
}
