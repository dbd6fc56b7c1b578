package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"rhystmorgan/folioterm/internal/form"
	"rhystmorgan/folioterm/internal/transport"
)

type Config struct {
	Endpoint            string        `yaml:"endpoint"`
	Timeout             time.Duration `yaml:"timeout"`
	RetryCount          int           `yaml:"retry_count"`
	SuccessDisplay      time.Duration `yaml:"success_display"`
	SimulateSuccessRate float64       `yaml:"simulate_success_rate"`
	SimulateLatency     time.Duration `yaml:"simulate_latency"`
	SentryDSN           string        `yaml:"sentry_dsn"`
	MetricsAddr         string        `yaml:"metrics_addr"`
	LogFile             string        `yaml:"log_file"`
	ReducedMotion       bool          `yaml:"reduced_motion"`
	Debug               bool          `yaml:"debug"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (if any), then FOLIOTERM_* environment variables.
func Load(path string) (*Config, error) {
	config := GetDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnv() {
	c.Endpoint = getEnvOrDefault("FOLIOTERM_ENDPOINT", c.Endpoint)
	c.Timeout = parseDurationOrDefault("FOLIOTERM_TIMEOUT", c.Timeout)
	c.RetryCount = parseIntOrDefault("FOLIOTERM_RETRY_COUNT", c.RetryCount)
	c.SuccessDisplay = parseDurationOrDefault("FOLIOTERM_SUCCESS_DISPLAY", c.SuccessDisplay)
	c.SimulateSuccessRate = parseFloatOrDefault("FOLIOTERM_SIMULATE_SUCCESS_RATE", c.SimulateSuccessRate)
	c.SimulateLatency = parseDurationOrDefault("FOLIOTERM_SIMULATE_LATENCY", c.SimulateLatency)
	c.SentryDSN = getEnvOrDefault("FOLIOTERM_SENTRY_DSN", c.SentryDSN)
	c.MetricsAddr = getEnvOrDefault("FOLIOTERM_METRICS_ADDR", c.MetricsAddr)
	c.LogFile = getEnvOrDefault("FOLIOTERM_LOG_FILE", c.LogFile)
	c.ReducedMotion = parseBoolOrDefault("FOLIOTERM_REDUCED_MOTION", c.ReducedMotion)
	c.Debug = parseBoolOrDefault("FOLIOTERM_DEBUG", c.Debug)
}

func (c *Config) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid endpoint: %s (must be an absolute http or https URL)", c.Endpoint)
		}
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.RetryCount < 0 {
		return fmt.Errorf("retry count must be non-negative, got: %d", c.RetryCount)
	}

	if c.SuccessDisplay <= 0 {
		return fmt.Errorf("success display must be positive, got: %v", c.SuccessDisplay)
	}

	if c.SimulateSuccessRate < 0 || c.SimulateSuccessRate > 1 {
		return fmt.Errorf("simulated success rate must be between 0 and 1, got: %v", c.SimulateSuccessRate)
	}

	if c.SimulateLatency < 0 {
		return errors.New("simulated latency must not be negative")
	}

	return nil
}

// UsesSimulatedTransport reports whether no real endpoint is configured
func (c *Config) UsesSimulatedTransport() bool {
	return c.Endpoint == ""
}

func (c *Config) ToTransportConfig() transport.Config {
	return transport.Config{
		Endpoint:   c.Endpoint,
		Timeout:    c.Timeout,
		RetryCount: c.RetryCount,
		RetryDelay: transport.DefaultRetryDelay,
	}
}

func (c *Config) ToFormConfig() form.Config {
	// the client enforces Timeout per call; the form allows one extra
	// second on top so the transport's own timeout error wins
	return form.Config{
		SuccessDisplay: c.SuccessDisplay,
		SubmitTimeout:  c.Timeout + time.Second,
	}
}

func GetDefaultConfig() *Config {
	return &Config{
		Endpoint:            "",
		Timeout:             transport.DefaultTimeout,
		RetryCount:          0,
		SuccessDisplay:      form.DefaultSuccessDisplay,
		SimulateSuccessRate: transport.DefaultSimulatedSuccessRate,
		SimulateLatency:     transport.DefaultSimulatedLatency,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
