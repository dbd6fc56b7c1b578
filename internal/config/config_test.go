package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"FOLIOTERM_ENDPOINT",
	"FOLIOTERM_TIMEOUT",
	"FOLIOTERM_RETRY_COUNT",
	"FOLIOTERM_SUCCESS_DISPLAY",
	"FOLIOTERM_SIMULATE_SUCCESS_RATE",
	"FOLIOTERM_SIMULATE_LATENCY",
	"FOLIOTERM_SENTRY_DSN",
	"FOLIOTERM_METRICS_ADDR",
	"FOLIOTERM_LOG_FILE",
	"FOLIOTERM_REDUCED_MOTION",
	"FOLIOTERM_DEBUG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "folioterm.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	config, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Endpoint != "" {
		t.Errorf("Expected empty endpoint by default, got '%s'", config.Endpoint)
	}

	if !config.UsesSimulatedTransport() {
		t.Error("Expected simulated transport without an endpoint")
	}

	if config.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", config.Timeout)
	}

	if config.RetryCount != 0 {
		t.Errorf("Expected default retry count 0, got %d", config.RetryCount)
	}

	if config.SuccessDisplay != 3*time.Second {
		t.Errorf("Expected default success display 3s, got %v", config.SuccessDisplay)
	}

	if config.SimulateSuccessRate != 0.8 {
		t.Errorf("Expected default simulated success rate 0.8, got %v", config.SimulateSuccessRate)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOLIOTERM_ENDPOINT", "https://folio.example/api/contact")
	t.Setenv("FOLIOTERM_TIMEOUT", "5s")
	t.Setenv("FOLIOTERM_RETRY_COUNT", "2")
	t.Setenv("FOLIOTERM_SUCCESS_DISPLAY", "2s")
	t.Setenv("FOLIOTERM_REDUCED_MOTION", "true")
	t.Setenv("FOLIOTERM_DEBUG", "1")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Endpoint != "https://folio.example/api/contact" {
		t.Errorf("Expected endpoint from env, got '%s'", config.Endpoint)
	}

	if config.UsesSimulatedTransport() {
		t.Error("Expected real transport with an endpoint")
	}

	if config.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", config.Timeout)
	}

	if config.RetryCount != 2 {
		t.Errorf("Expected retry count 2, got %d", config.RetryCount)
	}

	if config.SuccessDisplay != 2*time.Second {
		t.Errorf("Expected success display 2s, got %v", config.SuccessDisplay)
	}

	if !config.ReducedMotion || !config.Debug {
		t.Error("Expected reduced motion and debug to be enabled")
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOLIOTERM_TIMEOUT", "soon")
	t.Setenv("FOLIOTERM_RETRY_COUNT", "many")

	config, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout for malformed value, got %v", config.Timeout)
	}

	if config.RetryCount != 0 {
		t.Errorf("Expected default retry count for malformed value, got %d", config.RetryCount)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
endpoint: https://folio.example/contact
timeout: 4s
success_display: 2500ms
simulate_success_rate: 0.5
metrics_addr: 127.0.0.1:9464
`)

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Endpoint != "https://folio.example/contact" {
		t.Errorf("Expected endpoint from file, got '%s'", config.Endpoint)
	}

	if config.Timeout != 4*time.Second {
		t.Errorf("Expected timeout 4s, got %v", config.Timeout)
	}

	if config.SuccessDisplay != 2500*time.Millisecond {
		t.Errorf("Expected success display 2.5s, got %v", config.SuccessDisplay)
	}

	if config.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("Expected metrics address from file, got '%s'", config.MetricsAddr)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "timeout: 4s\n")
	t.Setenv("FOLIOTERM_TIMEOUT", "7s")

	config, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Timeout != 7*time.Second {
		t.Errorf("Expected env to override file, got %v", config.Timeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "timeout: [not a duration\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"https endpoint", func(c *Config) { c.Endpoint = "https://folio.example/contact" }, true},
		{"relative endpoint", func(c *Config) { c.Endpoint = "/api/contact" }, false},
		{"mailto endpoint", func(c *Config) { c.Endpoint = "mailto:me@example.com" }, false},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, false},
		{"negative retries", func(c *Config) { c.RetryCount = -1 }, false},
		{"zero success display", func(c *Config) { c.SuccessDisplay = 0 }, false},
		{"success rate above one", func(c *Config) { c.SimulateSuccessRate = 1.5 }, false},
		{"negative latency", func(c *Config) { c.SimulateLatency = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := GetDefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid config, got error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestToTransportAndFormConfig(t *testing.T) {
	config := GetDefaultConfig()
	config.Endpoint = "https://folio.example/contact"
	config.RetryCount = 1

	tc := config.ToTransportConfig()
	if tc.Endpoint != config.Endpoint || tc.Timeout != config.Timeout || tc.RetryCount != 1 {
		t.Errorf("Unexpected transport config: %+v", tc)
	}

	fc := config.ToFormConfig()
	if fc.SuccessDisplay != config.SuccessDisplay {
		t.Errorf("Expected success display %v, got %v", config.SuccessDisplay, fc.SuccessDisplay)
	}
	if fc.SubmitTimeout <= config.Timeout {
		t.Errorf("Expected form timeout above transport timeout, got %v", fc.SubmitTimeout)
	}
}
