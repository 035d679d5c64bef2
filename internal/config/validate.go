package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.RestURL == "" {
		return errors.New("api.rest_url is required")
	}
	if !strings.HasPrefix(c.API.RestURL, "http://") && !strings.HasPrefix(c.API.RestURL, "https://") {
		return fmt.Errorf("api.rest_url must be an http(s) URL, got %q", c.API.RestURL)
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must be >= 0")
	}

	// Credentials are optional (preview works unsigned) but must be
	// complete when present.
	hasKey := c.API.PrivateKeyPath != "" || c.API.PrivateKeyPEM != ""
	if c.API.APIKeyID != "" && !hasKey {
		return errors.New("api.api_key_id is set but no private key is configured")
	}
	if hasKey && c.API.APIKeyID == "" {
		return errors.New("a private key is configured but api.api_key_id is empty")
	}
	if c.API.PrivateKeyPath != "" && c.API.PrivateKeyPEM != "" {
		return errors.New("set api.private_key_path or api.private_key_pem, not both")
	}

	if c.Candidate.RefreshInterval < 0 {
		return errors.New("candidate.refresh_interval must be >= 0")
	}
	if c.Candidate.MaxMarkets < 1 {
		return errors.New("candidate.max_markets must be >= 1")
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}
