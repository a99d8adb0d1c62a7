package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidatePowerAutomateConfig(&cfg.PowerAutomate); err != nil {
		return fmt.Errorf("YAML global config: power_automate directive is invalid: %w", err)
	}
	return nil
}

// ValidateCredentials reports every blank credential field in a single ConfigError.
func ValidateCredentials(creds Credentials) error {
	fields := []struct {
		name  string
		value string
	}{
		{"tenant_id", creds.TenantID},
		{"client_id", creds.ClientID},
		{"client_secret", creds.ClientSecret},
		{"scope", creds.Scope},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ConfigError{MissingFields: missing}
	}
	return nil
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if err := validateDuration(httpConfig.Timeout, "timeout", 10*time.Minute); err != nil {
		return err
	}
	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}
	return nil
}

// ValidatePowerAutomateConfig checks that the authority and API base URL are absolute HTTP(S) URLs.
func ValidatePowerAutomateConfig(paConfig *PowerAutomate) error {
	if paConfig == nil {
		return fmt.Errorf("power automate configuration is nil")
	}
	if err := validateEndpoint(paConfig.Authority, "authority"); err != nil {
		return err
	}
	if err := validateEndpoint(paConfig.APIBaseURL, "api_base_url"); err != nil {
		return err
	}
	return nil
}

// validateEndpoint checks that raw parses as an absolute http or https URL.
func validateEndpoint(raw, name string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %s: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%s duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}

	if err := validatePort(proxy.Port); err != nil {
		return err
	}

	return nil
}

// validateHost checks if the host part of the proxy configuration is valid.
// It ensures the host includes a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	if _, err := url.Parse(*host); err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}

	return nil
}

// validatePort checks if the port part of the proxy configuration is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}
