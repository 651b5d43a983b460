package resilience

import "time"

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenRequests   = 2
)

// CircuitBreakerConfig tunes a CircuitBreaker. Zero or negative numbers fall
// back to the package defaults when the breaker is built.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: defaultFailureThreshold,
		OpenTimeout:      defaultOpenTimeout,
		HalfOpenMaxReq:   defaultHalfOpenRequests,
	}
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenRequests
	}
	return c
}

// LogFields renders the effective settings as key/value pairs for the
// structured logger.
func (c CircuitBreakerConfig) LogFields() []any {
	eff := c.withDefaults()
	return []any{
		"failure_threshold", eff.FailureThreshold,
		"open_timeout", eff.OpenTimeout.String(),
		"half_open_max_req", eff.HalfOpenMaxReq,
	}
}
