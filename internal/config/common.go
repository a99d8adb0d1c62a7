package config

import (
	"crypto/tls"
	"time"
)

const (
	DefaultScope      = "https://service.flow.microsoft.com/.default"
	DefaultAuthority  = "https://login.microsoftonline.com"
	DefaultAPIBaseURL = "https://api.flow.microsoft.com/providers/Microsoft.ProcessSimple/environments"

	EnvTenantID     = "FLOWSCAN_TENANT_ID"
	EnvClientID     = "FLOWSCAN_CLIENT_ID"
	EnvClientSecret = "FLOWSCAN_CLIENT_SECRET"
	EnvLogLevel     = "FLOWSCAN_LOG_LEVEL"
)

// BaseHTTPConfig holds common HTTP client configuration settings.
type BaseHTTPConfig struct {
	RetryCount      int           // Always zero, requests are sent exactly once
	Timeout         time.Duration // Zero disables the timeout
	TLSClientConfig *tls.Config   // TLS configuration
	Proxy           string        // Proxy address
}

// RestyHTTPClientConfig holds additional configuration settings for the Resty HTTP client.
type RestyHTTPClientConfig struct {
	BaseHTTPConfig
	Debug bool // Flag to enable Resty debug mode
}

// DefaultHTTPConfig returns a base configuration for HTTP clients with default values.
func DefaultHTTPConfig() BaseHTTPConfig {
	return BaseHTTPConfig{
		RetryCount: 0,
		Timeout:    0,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: false,
		},
		Proxy: "",
	}
}

// DefaultRestyConfig returns a default configuration for the Resty HTTP client, extending the base HTTP configuration.
func DefaultRestyConfig() RestyHTTPClientConfig {
	return RestyHTTPClientConfig{
		BaseHTTPConfig: DefaultHTTPConfig(),
		Debug:          false,
	}
}
