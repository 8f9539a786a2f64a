package llm

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"resume-review/internal/shared/telemetry"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) AnalyzeResume(ctx context.Context, input AnalyzeInput) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	return `{"rating":7}`, nil
}

func newTestRetry(base Client, policy RetryPolicy) (*retryingClient, *[]time.Duration) {
	var waits []time.Duration
	client := WithRateLimitRetry(base, policy).(*retryingClient)
	client.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return client, &waits
}

func TestRetrySucceedsAfterOneThrottle(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	base := &scriptedClient{errs: []error{ErrRateLimited}}
	client, waits := newTestRetry(base, DefaultRetryPolicy)

	text, err := client.AnalyzeResume(context.Background(), AnalyzeInput{ResumeText: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text == "" {
		t.Fatalf("expected candidate text")
	}
	if base.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", base.calls)
	}
	if len(*waits) != 1 || (*waits)[0] != 5*time.Second {
		t.Fatalf("expected a single 5s wait, got %v", *waits)
	}
}

func TestRetryExhaustsAfterMaxRetries(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	base := &scriptedClient{errs: []error{ErrRateLimited, ErrRateLimited, ErrRateLimited, ErrRateLimited, ErrRateLimited}}
	client, waits := newTestRetry(base, DefaultRetryPolicy)

	_, err := client.AnalyzeResume(context.Background(), AnalyzeInput{})
	if !errors.Is(err, ErrRateLimitExhausted) {
		t.Fatalf("expected ErrRateLimitExhausted, got %v", err)
	}
	if base.calls != 4 {
		t.Fatalf("expected 4 requests, got %d", base.calls)
	}
	want := []time.Duration{5 * time.Second, 10 * time.Second, 20 * time.Second}
	if len(*waits) != len(want) {
		t.Fatalf("expected waits %v, got %v", want, *waits)
	}
	for i := range want {
		if (*waits)[i] != want[i] {
			t.Fatalf("wait %d: expected %v, got %v", i, want[i], (*waits)[i])
		}
	}
}

func TestRetryDoesNotRetryOtherErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "status", err: &StatusError{Code: 500, Status: "Internal Server Error"}},
		{name: "network", err: ErrNetwork},
		{name: "empty", err: ErrEmptyResponse},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			base := &scriptedClient{errs: []error{tt.err}}
			client, waits := newTestRetry(base, DefaultRetryPolicy)

			_, err := client.AnalyzeResume(context.Background(), AnalyzeInput{})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if base.calls != 1 || len(*waits) != 0 {
				t.Fatalf("expected no retry, got calls=%d waits=%v", base.calls, *waits)
			}
		})
	}
}

func TestRetryStopsWhenContextCancelled(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	base := &scriptedClient{errs: []error{ErrRateLimited, ErrRateLimited}}
	client, _ := newTestRetry(base, DefaultRetryPolicy)

	_, err := client.AnalyzeResume(ctx, AnalyzeInput{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if base.calls != 1 {
		t.Fatalf("expected 1 call, got %d", base.calls)
	}
}

func TestZeroRetriesFailsOnFirstThrottle(t *testing.T) {
	restore := telemetry.SetOutput(io.Discard)
	defer restore()

	base := &scriptedClient{errs: []error{ErrRateLimited}}
	client, waits := newTestRetry(base, RetryPolicy{BaseDelay: time.Second})

	_, err := client.AnalyzeResume(context.Background(), AnalyzeInput{})
	if !errors.Is(err, ErrRateLimitExhausted) {
		t.Fatalf("expected ErrRateLimitExhausted, got %v", err)
	}
	if base.calls != 1 || len(*waits) != 0 {
		t.Fatalf("expected a single attempt, got calls=%d waits=%v", base.calls, *waits)
	}
}

func TestSleepContextReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryDelayDoublesThenCaps(t *testing.T) {
	policy := RetryPolicy{BaseDelay: 5 * time.Second, MaxRetries: 40}
	want := []time.Duration{5 * time.Second, 10 * time.Second, 20 * time.Second, 40 * time.Second}
	for i, w := range want {
		if got := policy.delay(i + 1); got != w {
			t.Fatalf("delay(%d) = %v, want %v", i+1, got, w)
		}
	}

	prev := time.Duration(0)
	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		got := policy.delay(attempt)
		if got <= 0 || got > MaxRetryDelay {
			t.Fatalf("delay(%d) = %v out of range", attempt, got)
		}
		if got < prev {
			t.Fatalf("delay(%d) = %v shrank from %v", attempt, got, prev)
		}
		prev = got
	}
	if got := policy.delay(40); got != MaxRetryDelay {
		t.Fatalf("delay(40) = %v, want cap %v", got, MaxRetryDelay)
	}
}
