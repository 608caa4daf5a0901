package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/planfact/planfact-bot/internal/domain/contract"
)

// RetryPolicy bounds a retry sequence two ways: by attempt count and by an
// overall wall-clock ceiling on cumulative waiting.
type RetryPolicy struct {
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	TotalTimeout time.Duration
}

// withRetry wraps any send or digest operation with the transport retry
// policy. Rate-limited failures wait the server-specified delay (capped at
// MaxDelay); transient failures back off exponentially; permanent failures
// return immediately; errors the transport could not classify are re-raised
// untouched so programming errors are never silently swallowed.
func withRetry(ctx context.Context, logger *slog.Logger, policy RetryPolicy, op string, fn func(ctx context.Context) error) error {
	deadline := time.Now().Add(policy.TotalTimeout)

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		var failure *contract.SendFailure
		if !errors.As(err, &failure) {
			return err
		}
		if failure.Kind == contract.SendFailurePermanent {
			return err
		}

		if attempt >= policy.MaxRetries {
			logger.Warn("retries exhausted", "op", op, "attempts", attempt+1, "error", err)
			return err
		}

		var wait time.Duration
		if failure.Kind == contract.SendFailureRateLimited {
			wait = failure.RetryAfter
		} else {
			wait = policy.BaseDelay << attempt
		}
		if wait > policy.MaxDelay {
			wait = policy.MaxDelay
		}

		if time.Now().Add(wait).After(deadline) {
			logger.Warn("retry budget exhausted", "op", op, "attempts", attempt+1, "error", err)
			return err
		}

		logger.Info("retrying after failure", "op", op, "attempt", attempt+1, "wait", wait, "kind", failure.Kind.String())

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
