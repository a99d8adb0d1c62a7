package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is the global configuration loaded from the YAML config file.
type Config struct {
	Logger        Logger        `yaml:"logger"`
	HTTPClient    HTTPClient    `yaml:"http_client"`
	Credentials   Credentials   `yaml:"credentials"`
	PowerAutomate PowerAutomate `yaml:"power_automate"`
}

// Logger holds the logging settings.
type Logger struct {
	Level           string `yaml:"level"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// HTTPClient holds the settings applied to the outbound HTTP client.
type HTTPClient struct {
	Debug           *bool           `yaml:"debug"`
	Timeout         time.Duration   `yaml:"timeout"`
	TLSClientConfig TLSClientConfig `yaml:"tls_client_config"`
	Proxy           Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Credentials identifies the application registration used for the client-credentials grant.
type Credentials struct {
	TenantID     string `yaml:"tenant_id"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Scope        string `yaml:"scope"`
}

// PowerAutomate holds the endpoints of the identity provider and the flow management API.
type PowerAutomate struct {
	Authority  string `yaml:"authority"`
	APIBaseURL string `yaml:"api_base_url"`
}

// ValidateConfigPath checks that the path exists and is a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the config file, applies environment overrides and fills in defaults.
// An empty path yields a configuration built from the environment and defaults only.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		if err := LoadYAML(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
		}
	}

	ApplyEnvOverrides(cfg)
	ApplyDefaults(cfg)
	return cfg, nil
}

// ApplyEnvOverrides replaces credential values with the ones set in the environment.
func ApplyEnvOverrides(cfg *Config) {
	cfg.Credentials.TenantID = SetThen(os.Getenv(EnvTenantID), cfg.Credentials.TenantID)
	cfg.Credentials.ClientID = SetThen(os.Getenv(EnvClientID), cfg.Credentials.ClientID)
	cfg.Credentials.ClientSecret = SetThen(os.Getenv(EnvClientSecret), cfg.Credentials.ClientSecret)
}

// ApplyDefaults fills the scope and endpoints left empty by the config file.
func ApplyDefaults(cfg *Config) {
	cfg.Credentials.Scope = SetThen(cfg.Credentials.Scope, DefaultScope)
	cfg.PowerAutomate.Authority = SetThen(cfg.PowerAutomate.Authority, DefaultAuthority)
	cfg.PowerAutomate.APIBaseURL = SetThen(cfg.PowerAutomate.APIBaseURL, DefaultAPIBaseURL)
}
