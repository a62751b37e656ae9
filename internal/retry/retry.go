// Package retry wraps fallible operations with exponential backoff, an
// attempt cap and optional jitter.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Options tunes a retried execution. Zero values fall back to defaults.
type Options struct {
	MaxAttempts       int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	Jitter            bool

	// Sleep suspends between attempts; nil means a real timer. Tests inject
	// a recording fake here.
	Sleep func(ctx context.Context, d time.Duration) error

	Logger *slog.Logger
}

// DefaultOptions mirrors the production tuning: 3 attempts, 1s initial
// delay doubling up to 30s, with jitter.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:       3,
		InitialDelay:      time.Second,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2,
		Jitter:            true,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = def.InitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = def.MaxDelay
	}
	if o.BackoffMultiplier <= 0 {
		o.BackoffMultiplier = def.BackoffMultiplier
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	return o
}

// Execute runs op up to MaxAttempts times sequentially, sleeping between
// failures. The first success wins; exhaustion returns an aggregate error
// embedding the attempt count and the last failure.
func Execute[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts Options) (T, error) {
	o := opts.withDefaults()

	var zero T
	var lastErr error
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		o.log("attempt failed", "attempt", attempt, "max_attempts", o.MaxAttempts, "error", err)

		if attempt == o.MaxAttempts {
			break
		}

		delay := delayFor(attempt, o)
		o.log("waiting before next attempt", "delay", delay)
		if sleepErr := o.Sleep(ctx, delay); sleepErr != nil {
			return zero, fmt.Errorf("retry interrupted: %w", sleepErr)
		}
	}

	return zero, fmt.Errorf("failed after %d attempts: last error: %w", o.MaxAttempts, lastErr)
}

// delayFor computes initial × multiplier^(attempt−1), clamped to MaxDelay,
// plus up to 10% random jitter when enabled.
func delayFor(attempt int, o Options) time.Duration {
	delay := float64(o.InitialDelay) * math.Pow(o.BackoffMultiplier, float64(attempt-1))
	delay = math.Min(delay, float64(o.MaxDelay))

	if o.Jitter {
		delay += rand.Float64() * delay * 0.1
	}

	return time.Duration(delay)
}

// ExecuteWithTimeout races Execute against a timer. The retried operation
// is not cancelled when the timer wins; only the caller stops waiting.
func ExecuteWithTimeout[T any](ctx context.Context, op func(ctx context.Context) (T, error), timeout time.Duration, opts Options) (T, error) {
	type outcome struct {
		result T
		err    error
	}

	// Buffered so the abandoned goroutine never blocks on send.
	done := make(chan outcome, 1)
	go func() {
		result, err := Execute(ctx, op, opts)
		done <- outcome{result: result, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.result, out.err
	case <-timer.C:
		return zero, fmt.Errorf("operation timed out after %s", timeout)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// ExecuteParallel retries each operation independently and concurrently,
// returning results in input order. The first error encountered is returned
// after all operations settle.
func ExecuteParallel[T any](ctx context.Context, ops []func(ctx context.Context) (T, error), opts Options) ([]T, error) {
	results := make([]T, len(ops))
	errs := make([]error, len(ops))

	done := make(chan int, len(ops))
	for i, op := range ops {
		go func(i int, op func(ctx context.Context) (T, error)) {
			results[i], errs[i] = Execute(ctx, op, opts)
			done <- i
		}(i, op)
	}
	for range ops {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// ExecuteWithFallback retries primary; on exhaustion fallback runs exactly
// once, outside retry accounting.
func ExecuteWithFallback[T any](ctx context.Context, primary, fallback func(ctx context.Context) (T, error), opts Options) (T, error) {
	result, err := Execute(ctx, primary, opts)
	if err == nil {
		return result, nil
	}

	opts.withDefaults().log("primary exhausted, using fallback", "error", err)
	return fallback(ctx)
}

func (o Options) log(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, args...)
	}
}

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
