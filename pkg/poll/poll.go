// Package poll repeats a status check at a fixed interval until it reports
// done, the attempt budget is spent, the deadline passes, or the context is
// cancelled.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMaxAttempts is returned when the check never reported done within
// Options.MaxAttempts calls.
var ErrMaxAttempts = errors.New("poll: maximum attempts reached")

// Options configures Until. Zero MaxAttempts and zero Timeout mean unbounded.
type Options struct {
	Interval    time.Duration
	MaxAttempts int
	Timeout     time.Duration
}

// CheckFunc performs one check. Returning a non-nil error stops polling.
type CheckFunc func(ctx context.Context, attempt int) (done bool, err error)

// Until calls check, then sleeps Interval between checks until check reports
// done. The first call happens immediately. Attempts are numbered from 1.
func Until(ctx context.Context, opts Options, check CheckFunc) error {
	if check == nil {
		return errors.New("poll: check func is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("poll: stopped after %d attempt(s): %w", attempt-1, err)
		}

		done, err := check(ctx, attempt)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if opts.MaxAttempts > 0 && attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w (%d)", ErrMaxAttempts, opts.MaxAttempts)
		}

		if timer == nil {
			timer = time.NewTimer(opts.Interval)
		} else {
			timer.Reset(opts.Interval)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("poll: stopped after %d attempt(s): %w", attempt, ctx.Err())
		case <-timer.C:
		}
	}
}
