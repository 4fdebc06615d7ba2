// Package resilience wraps calls to external model and storage APIs in
// per-dependency circuit breakers with a call timeout.
package resilience

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/BerylCAtieno/artisan-content-agent/internal/config"
	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/metrics"
)

// Breaker is a named circuit breaker around string-returning calls.
type Breaker = gobreaker.CircuitBreaker[string]

// NewBreaker trips after cfg.BreakerFailures consecutive failures and stays
// open for cfg.BreakerOpenFor. A caller cancelling its own request is not a
// failure of the dependency and does not count.
func NewBreaker(name string, cfg config.AnalysisConfig) *Breaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	log := logging.With("circuit_breaker")

	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("name", name).Str("from", from.String()).Str("to", to.String()).Msg("state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

// Call runs fn through cb with a context bounded by timeout.
func Call(ctx context.Context, cb *Breaker, timeout time.Duration, fn func(context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return cb.Execute(func() (string, error) {
		return fn(ctx)
	})
}

// Rejected reports whether err came from an open or saturated breaker.
func Rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
