package cb

import (
	"fmt"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type circuitBreaker[T any, V any] struct {
	*gobreaker.CircuitBreaker[*V]
}

func (cb *circuitBreaker[T, V]) execute(f func(request *T) (*V, error), request *T) (*V, error) {
	return cb.CircuitBreaker.Execute(func() (*V, error) {
		return f(request)
	})
}

func newCircuitBreaker[T any, V any](parameters *CircuitBreakerParameters, resource string, logger *zap.Logger) *circuitBreaker[T, V] {
	consecutiveFailures := parameters.ConsecutiveFailures
	return &circuitBreaker[T, V]{
		CircuitBreaker: gobreaker.NewCircuitBreaker[*V](gobreaker.Settings{
			Name:        fmt.Sprintf("http client circuit breaker for resource %s", resource),
			MaxRequests: parameters.MaxRequests,
			Interval:    parameters.Interval,
			Timeout:     parameters.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= consecutiveFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("resource", resource),
					zap.Stringer("from", from),
					zap.Stringer("to", to))
			},
		}),
	}
}
