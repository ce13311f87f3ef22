package cb

import (
	"fmt"
	"time"
)

type CircuitBreakerParameters struct {
	MaxRequests         uint32
	ConsecutiveFailures uint32
	Interval            time.Duration
	Timeout             time.Duration
}

// carries a failed response through the breaker so the caller still receives it
type circuitBreakerErrorWrapper[T any] struct {
	wrapped T
}

func (e *circuitBreakerErrorWrapper[T]) Error() string {
	return fmt.Sprintf("circuit breaker counted failure: %v", e.wrapped)
}
