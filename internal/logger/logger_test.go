package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/flowscan/internal/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		cfgLevel string
		want     hclog.Level
	}{
		{name: "default", want: hclog.Info},
		{name: "from config", cfgLevel: "debug", want: hclog.Debug},
		{name: "env wins over config", env: "error", cfgLevel: "debug", want: hclog.Error},
		{name: "unknown falls back to info", cfgLevel: "verbose", want: hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvLogLevel, tt.env)
			cfg := &config.Config{Logger: config.Logger{Level: tt.cfgLevel}}
			assert.Equal(t, tt.want, determineLogLevel(cfg))
		})
	}
}

func TestNewLoggerWithOutput(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")

	var buf bytes.Buffer
	l := NewLoggerWithOutput(&config.Config{}, "flowscan", &buf)
	l.Debug("hidden")
	l.Info("visible", "flow_id", "f1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "flowscan: visible: flow_id=f1")
}
