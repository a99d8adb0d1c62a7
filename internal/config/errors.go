package config

import (
	"fmt"
	"strings"
)

// ConfigError reports required configuration values that are missing or blank.
type ConfigError struct {
	MissingFields []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.MissingFields, ", "))
}
