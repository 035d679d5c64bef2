package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL         = "https://demo-api.kalshi.co/trade-api/v2"
	DefaultAPITimeout      = 30 * time.Second
	DefaultMaxRetries      = 3
	DefaultRefreshInterval = 5 * time.Minute
	DefaultMaxMarkets      = 50000
	DefaultMetricsPort     = 9090
	DefaultMetricsPath     = "/metrics"
)

func (c *Config) applyDefaults() {
	// API defaults. The demo venue is the default so a misconfigured
	// run cannot place real-money orders.
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	// Candidate registry defaults
	if c.Candidate.RefreshInterval == 0 {
		c.Candidate.RefreshInterval = DefaultRefreshInterval
	}
	if c.Candidate.MaxMarkets == 0 {
		c.Candidate.MaxMarkets = DefaultMaxMarkets
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
