// Package config loads and validates YAML configuration, with ${VAR}
// environment expansion so secrets stay out of the file.
package config

import "time"

// Config is the root configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Basket    BasketConfig    `yaml:"basket"`
	Candidate CandidateConfig `yaml:"candidate"`
	Themes    ThemesConfig    `yaml:"themes"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// APIConfig holds venue API settings.
type APIConfig struct {
	RestURL        string        `yaml:"rest_url"`
	APIKeyID       string        `yaml:"api_key_id"`       // KALSHI-ACCESS-KEY header value
	PrivateKeyPath string        `yaml:"private_key_path"` // path to RSA private key PEM file
	PrivateKeyPEM  string        `yaml:"private_key_pem"`  // inline PEM, e.g. from ${KALSHI_PRIVATE_KEY}
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
}

// HasCredentials reports whether signing credentials are configured.
// Without them only public read endpoints work.
func (c APIConfig) HasCredentials() bool {
	return c.APIKeyID != "" && (c.PrivateKeyPath != "" || c.PrivateKeyPEM != "")
}

// BasketConfig holds basket engine settings.
type BasketConfig struct {
	RestingOrders bool `yaml:"resting_orders"` // good-till-cancelled instead of immediate-or-cancel
}

// CandidateConfig holds candidate registry settings.
type CandidateConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	MaxMarkets      int           `yaml:"max_markets"`
}

// ThemesConfig points at the theme file.
type ThemesConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig holds the Prometheus listener settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}
