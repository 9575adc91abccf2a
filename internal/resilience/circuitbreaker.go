package resilience

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"skincare-advisor/internal/logging"
)

// BreakerSettings configures NewCircuitBreaker. The breaker opens after
// Threshold consecutive failures and lets a trial request through once
// Timeout has passed.
type BreakerSettings struct {
	Name      string
	Threshold uint32
	Timeout   time.Duration
}

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = gobreaker.ErrOpenState

func NewCircuitBreaker[T any](s BreakerSettings) *gobreaker.CircuitBreaker[T] {
	if s.Threshold == 0 {
		s.Threshold = 3
	}
	log := logging.WithComponent("breaker")

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Threshold
		},
		// 4xx responses mean the upstream is healthy.
		IsSuccessful: func(err error) bool {
			var perm *Permanent
			return err == nil || errors.As(err, &perm)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			ev := log.Info()
			if to == gobreaker.StateOpen {
				ev = log.Warn()
			}
			ev.Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state change")
		},
	})
}
