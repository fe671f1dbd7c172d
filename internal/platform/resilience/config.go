package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled      bool
	MaxFailures  int
	ResetTimeout time.Duration
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:      true,
		MaxFailures:  3,
		ResetTimeout: 300 * time.Second,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = defaults.MaxFailures
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = defaults.ResetTimeout
	}
	return cfg
}

type RetryConfig struct {
	MaxRetries int
	Backoff    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		Backoff:    time.Second,
	}
}

func NormalizeRetryConfig(cfg RetryConfig) RetryConfig {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff < 0 {
		cfg.Backoff = 0
	}
	return cfg
}
