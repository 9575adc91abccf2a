package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skincare-advisor/internal/logging"
)

// Permanent marks an error that retrying cannot fix, such as a 4xx response.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string { return p.Err.Error() }
func (p *Permanent) Unwrap() error { return p.Err }

// Retry runs fn up to attempts times, sleeping delay between tries. It stops
// early when ctx is done or fn returns a *Permanent error, which is passed
// back unchanged.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			logging.Ctx(ctx).Info().Int("attempt", i+1).Err(err).Msg("Retrying request...")
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry aborted: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		err = fn()
		if err == nil {
			return nil
		}

		var perm *Permanent
		if errors.As(err, &perm) {
			return err
		}
	}
	return fmt.Errorf("after %d attempts, last error: %w", attempts, err)
}
